package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/playverse/community-backend/internal/entity"
	"gorm.io/gorm"
)

// CommentWithReplies carries the per-comment reply count the list endpoint
// sorts and renders with.
type CommentWithReplies struct {
	entity.Comment
	ReplyCount int64
}

type ListParams struct {
	ContentID   uuid.UUID
	ContentType string
	ParentID    *uuid.UUID // nil selects top-level comments
	SortBy      string     // "date" or "replies"
	SortOrder   string     // "asc" or "desc"
	Offset      int
	Limit       int
}

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	// FindByID returns the row regardless of its deleted flag; callers decide
	// how a deleted comment is reported.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error)
	List(ctx context.Context, params ListParams) ([]CommentWithReplies, int64, error)
	FindFirstByAuthor(ctx context.Context, contentID uuid.UUID, contentType string, authorID uuid.UUID) (*CommentWithReplies, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	var comment entity.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id).
		First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

const replyCountSelect = "comments.*, (SELECT COUNT(*) FROM comments r WHERE r.parent_id = comments.id AND r.is_deleted = false) AS reply_count"

func (r *commentRepository) List(ctx context.Context, params ListParams) ([]CommentWithReplies, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.Comment{}).
		Where("content_id = ? AND content_type = ? AND is_deleted = ?", params.ContentID, params.ContentType, false)

	if params.ParentID != nil {
		query = query.Where("parent_id = ?", *params.ParentID)
	} else {
		query = query.Where("parent_id IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "comments.created_at"
	if params.SortBy == "replies" {
		order = "reply_count"
	}
	if params.SortOrder == "desc" {
		order += " DESC"
	} else {
		order += " ASC"
	}

	var comments []CommentWithReplies
	err := query.
		Select(replyCountSelect).
		Preload("Author").
		Order(order).
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&comments).Error

	return comments, total, err
}

// FindFirstByAuthor surfaces the viewer's own comment on a content item.
// A user may have several; only the earliest is returned.
func (r *commentRepository) FindFirstByAuthor(ctx context.Context, contentID uuid.UUID, contentType string, authorID uuid.UUID) (*CommentWithReplies, error) {
	var comments []CommentWithReplies
	err := r.db.WithContext(ctx).
		Model(&entity.Comment{}).
		Select(replyCountSelect).
		Where("content_id = ? AND content_type = ? AND author_id = ? AND is_deleted = ?",
			contentID, contentType, authorID, false).
		Preload("Author").
		Order("comments.created_at ASC").
		Limit(1).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return nil, nil
	}
	return &comments[0], nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	return r.db.WithContext(ctx).Model(&entity.Comment{}).
		Where("id = ?", id).
		Update("content", content).Error
}

// SoftDelete flips the one-way deleted flag; the row stays for the sake of
// existing replies.
func (r *commentRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Comment{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}
