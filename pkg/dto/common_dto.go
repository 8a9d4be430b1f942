package dto

import "github.com/google/uuid"

type AuthorResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
}

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
}

// EmojiGroup is one bucket of the grouped reaction read side.
type EmojiGroup struct {
	Count int64            `json:"count"`
	Users []AuthorResponse `json:"users"`
}

type ReactionsResponse struct {
	Reactions      map[string]EmojiGroup `json:"reactions"`
	UserReaction   *string               `json:"user_reaction"`
	TotalReactions int64                 `json:"total_reactions"`
}
