package dto

import (
	"github.com/google/uuid"
	commonDto "github.com/playverse/community-backend/pkg/dto"
)

type CreateCommentRequest struct {
	Content     string     `json:"content" binding:"required,min=1,max=1000"`
	ContentID   uuid.UUID  `json:"content_id" binding:"required"`
	ContentType string     `json:"content_type" binding:"required,oneof=forum_thread forum_reply lfg_post news_post user news post event comment"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

const (
	SortByDate    = "date"
	SortByReplies = "replies"
)

type CommentFilter struct {
	ContentID   string `form:"content_id" binding:"required,uuid"`
	ContentType string `form:"content_type" binding:"required,oneof=forum_thread forum_reply lfg_post news_post user news post event comment"`
	ParentID    string `form:"parent_id" binding:"omitempty,uuid"`
	SortBy      string `form:"sort_by" binding:"omitempty,oneof=date replies"`
	SortOrder   string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type CommentResponse struct {
	ID          uuid.UUID                `json:"id"`
	Content     string                   `json:"content"`
	ContentID   uuid.UUID                `json:"content_id"`
	ContentType string                   `json:"content_type"`
	ParentID    *uuid.UUID               `json:"parent_id,omitempty"`
	Author      commonDto.AuthorResponse `json:"author"`
	ReplyCount  int64                    `json:"reply_count"`
	CreatedAt   string                   `json:"created_at"`
	UpdatedAt   string                   `json:"updated_at"`
}

type CommentListResponse struct {
	Comments      []CommentResponse        `json:"comments"`
	TotalComments int64                    `json:"total_comments"`
	UserComment   *CommentResponse         `json:"user_comment"`
	Pagination    commonDto.PaginationMeta `json:"pagination"`
}
