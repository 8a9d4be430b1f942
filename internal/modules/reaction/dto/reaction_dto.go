package dto

import (
	"github.com/google/uuid"
	commonDto "github.com/playverse/community-backend/pkg/dto"
)

type ReactionToggleRequest struct {
	ContentID   uuid.UUID `json:"content_id" binding:"required"`
	ContentType string    `json:"content_type" binding:"required,oneof=forum_thread forum_reply lfg_post news_post user news post event comment"`
	Emoji       string    `json:"emoji" binding:"required,max=10"`
}

const (
	ActionCreated = "created"
	ActionRemoved = "removed"
	ActionUpdated = "updated"
)

type ToggleResponse struct {
	Action   string            `json:"action"`
	Reaction *ReactionResponse `json:"reaction,omitempty"`
}

type ReactionResponse struct {
	ID          uuid.UUID `json:"id"`
	ContentID   uuid.UUID `json:"content_id"`
	ContentType string    `json:"content_type"`
	UserID      uuid.UUID `json:"user_id"`
	Emoji       string    `json:"emoji"`
}

type ReactionsResponse = commonDto.ReactionsResponse
