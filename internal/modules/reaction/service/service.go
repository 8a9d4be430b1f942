package reaction

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/playverse/community-backend/internal/entity"
	reactionDto "github.com/playverse/community-backend/internal/modules/reaction/dto"
	reactionRepo "github.com/playverse/community-backend/internal/modules/reaction/repository"
	commonDto "github.com/playverse/community-backend/pkg/dto"
	"github.com/redis/go-redis/v9"
)

type ReactionService interface {
	ToggleReaction(ctx context.Context, userID uuid.UUID, req reactionDto.ReactionToggleRequest) (*reactionDto.ToggleResponse, error)
	GetReactions(ctx context.Context, viewerID *uuid.UUID, contentID uuid.UUID, contentType string) (*commonDto.ReactionsResponse, error)
}

type reactionService struct {
	repo        reactionRepo.ReactionRepository
	redisClient *redis.Client
}

func NewReactionService(repo reactionRepo.ReactionRepository, redisClient *redis.Client) ReactionService {
	return &reactionService{
		repo:        repo,
		redisClient: redisClient,
	}
}

func (s *reactionService) ToggleReaction(ctx context.Context, userID uuid.UUID, req reactionDto.ReactionToggleRequest) (*reactionDto.ToggleResponse, error) {
	reaction := &entity.Reaction{
		UserID:      userID,
		ContentID:   req.ContentID,
		ContentType: req.ContentType,
		Emoji:       req.Emoji,
	}

	oldEmoji, newEmoji, err := s.repo.Toggle(ctx, reaction)
	if err != nil {
		return nil, err
	}

	// Keep the Redis counts hash coherent; the DB already committed, so a
	// cache failure is logged and ignored.
	s.adjustCounts(ctx, req.ContentType, req.ContentID, oldEmoji, newEmoji)

	resp := &reactionDto.ToggleResponse{}
	switch {
	case oldEmoji == "" && newEmoji != "":
		resp.Action = reactionDto.ActionCreated
	case newEmoji == "":
		resp.Action = reactionDto.ActionRemoved
	default:
		resp.Action = reactionDto.ActionUpdated
	}

	if newEmoji != "" {
		resp.Reaction = &reactionDto.ReactionResponse{
			ID:          reaction.ID,
			ContentID:   reaction.ContentID,
			ContentType: reaction.ContentType,
			UserID:      reaction.UserID,
			Emoji:       newEmoji,
		}
	}

	return resp, nil
}

func (s *reactionService) GetReactions(ctx context.Context, viewerID *uuid.UUID, contentID uuid.UUID, contentType string) (*commonDto.ReactionsResponse, error) {
	rows, err := s.repo.GetByContent(ctx, contentID, contentType)
	if err != nil {
		return nil, err
	}

	groups := make(map[string]commonDto.EmojiGroup)
	var total int64
	var userReaction *string

	for _, row := range rows {
		group := groups[row.Emoji]
		group.Count++
		group.Users = append(group.Users, commonDto.AuthorResponse{
			ID:          row.UserID,
			Username:    row.User.Username,
			DisplayName: row.User.DisplayName,
		})
		groups[row.Emoji] = group
		total++

		if viewerID != nil && row.UserID == *viewerID {
			emoji := row.Emoji
			userReaction = &emoji
		}
	}

	// Refresh the counts cache while we have the authoritative rows.
	s.refreshCounts(ctx, contentType, contentID, groups)

	return &commonDto.ReactionsResponse{
		Reactions:      groups,
		UserReaction:   userReaction,
		TotalReactions: total,
	}, nil
}

func countsKey(contentType string, contentID uuid.UUID) string {
	return fmt.Sprintf("counts:%s:%s", contentType, contentID.String())
}

func (s *reactionService) adjustCounts(ctx context.Context, contentType string, contentID uuid.UUID, oldEmoji, newEmoji string) {
	if s.redisClient == nil {
		return
	}

	pipe := s.redisClient.Pipeline()
	key := countsKey(contentType, contentID)

	if oldEmoji != "" {
		pipe.HIncrBy(ctx, key, oldEmoji, -1)
	}
	if newEmoji != "" {
		pipe.HIncrBy(ctx, key, newEmoji, 1)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("redis reaction count update failed: %v", err)
	}
}

func (s *reactionService) refreshCounts(ctx context.Context, contentType string, contentID uuid.UUID, groups map[string]commonDto.EmojiGroup) {
	if s.redisClient == nil {
		return
	}

	key := countsKey(contentType, contentID)
	pipe := s.redisClient.Pipeline()
	pipe.Del(ctx, key)
	for emoji, group := range groups {
		pipe.HSet(ctx, key, emoji, group.Count)
	}
	// TTL so keys for cold content eventually expire
	pipe.Expire(ctx, key, 7*24*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("redis reaction count rebuild failed: %v", err)
	}
}
