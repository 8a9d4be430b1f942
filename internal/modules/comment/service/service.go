package comment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/playverse/community-backend/internal/entity"
	commentDto "github.com/playverse/community-backend/internal/modules/comment/dto"
	commentRepo "github.com/playverse/community-backend/internal/modules/comment/repository"
	notifService "github.com/playverse/community-backend/internal/modules/notification/service"
	"github.com/playverse/community-backend/pkg/apperror"
	"github.com/playverse/community-backend/pkg/ratelimiter"
	commonDto "github.com/playverse/community-backend/pkg/dto"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CommentService interface {
	CreateComment(ctx context.Context, authorID uuid.UUID, req commentDto.CreateCommentRequest) (*commentDto.CommentResponse, error)
	ListComments(ctx context.Context, viewerID *uuid.UUID, filter commentDto.CommentFilter) (*commentDto.CommentListResponse, error)
	UpdateComment(ctx context.Context, editorID, commentID uuid.UUID, req commentDto.UpdateCommentRequest) (*commentDto.CommentResponse, error)
	DeleteComment(ctx context.Context, requesterID, commentID uuid.UUID) error
}

type commentService struct {
	repo                commentRepo.CommentRepository
	notificationService notifService.NotificationService
	redisClient         *redis.Client
	sanitizer           *bluemonday.Policy
}

func NewCommentService(repo commentRepo.CommentRepository, notificationService notifService.NotificationService, redisClient *redis.Client) CommentService {
	return &commentService{
		repo:                repo,
		notificationService: notificationService,
		redisClient:         redisClient,
		sanitizer:           bluemonday.StrictPolicy(),
	}
}

func (s *commentService) CreateComment(ctx context.Context, authorID uuid.UUID, req commentDto.CreateCommentRequest) (*commentDto.CommentResponse, error) {
	cooldown := ratelimiter.GetDurationFromEnv("RATE_LIMIT_COMMENT", 5*time.Second)
	allowed, err := ratelimiter.CheckAndSetRateLimit(ctx, s.redisClient, authorID, "comment", cooldown)
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		ttl, _ := ratelimiter.GetRateLimitTTL(ctx, s.redisClient, authorID, "comment")
		return nil, &ratelimiter.RateLimitError{
			Message:    fmt.Sprintf("you are commenting too fast. Please wait %.0f seconds", ttl.Seconds()),
			RetryAfter: ttl,
		}
	}

	content := strings.TrimSpace(s.sanitizer.Sanitize(req.Content))
	if content == "" {
		return nil, fmt.Errorf("%w: comment has no content after sanitization", apperror.ErrInvalidInput)
	}

	var parent *entity.Comment
	if req.ParentID != nil {
		parent, err = s.repo.FindByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: parent comment not found", apperror.ErrNotFound)
			}
			return nil, err
		}
		if parent.IsDeleted {
			return nil, fmt.Errorf("%w: parent comment not found", apperror.ErrNotFound)
		}
		if parent.ContentID != req.ContentID || parent.ContentType != req.ContentType {
			return nil, fmt.Errorf("%w: parent comment belongs to different content", apperror.ErrBadRequest)
		}
	}

	comment := &entity.Comment{
		ContentID:   req.ContentID,
		ContentType: req.ContentType,
		AuthorID:    authorID,
		ParentID:    req.ParentID,
		Content:     content,
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Best-effort reply notification; a failure here never fails the comment.
	if parent != nil && parent.AuthorID != authorID {
		notification := &entity.Notification{
			UserID:      parent.AuthorID,
			ActorID:     &authorID,
			Type:        entity.NotificationCommentReply,
			Title:       "New reply to your comment",
			Message:     snippet(content, 80),
			ContentID:   &comment.ContentID,
			ContentType: &comment.ContentType,
		}
		if err := s.notificationService.CreateNotification(ctx, notification); err != nil {
			log.Printf("failed to send reply notification: %v", err)
		}
	}

	created, err := s.repo.FindByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	resp := mapToResponse(commentRepo.CommentWithReplies{Comment: *created})
	return &resp, nil
}

func (s *commentService) ListComments(ctx context.Context, viewerID *uuid.UUID, filter commentDto.CommentFilter) (*commentDto.CommentListResponse, error) {
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	if filter.SortBy == "" {
		filter.SortBy = commentDto.SortByDate
	}
	if filter.SortOrder == "" {
		filter.SortOrder = "asc"
	}

	contentID, err := uuid.Parse(filter.ContentID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid content id", apperror.ErrBadRequest)
	}

	params := commentRepo.ListParams{
		ContentID:   contentID,
		ContentType: filter.ContentType,
		SortBy:      filter.SortBy,
		SortOrder:   filter.SortOrder,
		Offset:      (filter.Page - 1) * filter.Limit,
		Limit:       filter.Limit,
	}
	if filter.ParentID != "" {
		parentID, err := uuid.Parse(filter.ParentID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid parent id", apperror.ErrBadRequest)
		}
		params.ParentID = &parentID
	}

	comments, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	responses := make([]commentDto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, mapToResponse(comment))
	}

	var userComment *commentDto.CommentResponse
	if viewerID != nil {
		own, err := s.repo.FindFirstByAuthor(ctx, contentID, filter.ContentType, *viewerID)
		if err != nil {
			return nil, err
		}
		if own != nil {
			mapped := mapToResponse(*own)
			userComment = &mapped
		}
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return &commentDto.CommentListResponse{
		Comments:      responses,
		TotalComments: total,
		UserComment:   userComment,
		Pagination: commonDto.PaginationMeta{
			CurrentPage: filter.Page,
			TotalPages:  totalPages,
			TotalItems:  total,
			Limit:       filter.Limit,
		},
	}, nil
}

func (s *commentService) UpdateComment(ctx context.Context, editorID, commentID uuid.UUID, req commentDto.UpdateCommentRequest) (*commentDto.CommentResponse, error) {
	comment, err := s.findLive(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != editorID {
		return nil, fmt.Errorf("%w: you can only edit your own comment", apperror.ErrForbidden)
	}

	content := strings.TrimSpace(s.sanitizer.Sanitize(req.Content))
	if content == "" {
		return nil, fmt.Errorf("%w: comment has no content after sanitization", apperror.ErrInvalidInput)
	}

	if err := s.repo.UpdateContent(ctx, commentID, content); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	resp := mapToResponse(commentRepo.CommentWithReplies{Comment: *updated})
	return &resp, nil
}

func (s *commentService) DeleteComment(ctx context.Context, requesterID, commentID uuid.UUID) error {
	comment, err := s.findLive(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != requesterID {
		return fmt.Errorf("%w: you can only delete your own comment", apperror.ErrForbidden)
	}

	return s.repo.SoftDelete(ctx, commentID)
}

// findLive resolves a comment id, reporting a missing row as NotFound and an
// already-deleted one as an invalid state.
func (s *commentService) findLive(ctx context.Context, commentID uuid.UUID) (*entity.Comment, error) {
	comment, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: comment not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	if comment.IsDeleted {
		return nil, fmt.Errorf("%w: comment has been deleted", apperror.ErrInvalidState)
	}
	return comment, nil
}

func mapToResponse(comment commentRepo.CommentWithReplies) commentDto.CommentResponse {
	return commentDto.CommentResponse{
		ID:          comment.ID,
		Content:     comment.Content,
		ContentID:   comment.ContentID,
		ContentType: comment.ContentType,
		ParentID:    comment.ParentID,
		Author: commonDto.AuthorResponse{
			ID:          comment.AuthorID,
			Username:    comment.Author.Username,
			DisplayName: comment.Author.DisplayName,
		},
		ReplyCount: comment.ReplyCount,
		CreatedAt:  comment.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:  comment.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func snippet(content string, max int) string {
	if len(content) <= max {
		return content
	}
	return content[:max] + "..."
}
