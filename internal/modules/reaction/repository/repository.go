package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/playverse/community-backend/internal/entity"
	"gorm.io/gorm"
)

type ReactionRepository interface {
	// Toggle: returns oldEmoji (if any), newEmoji (if any), error
	Toggle(ctx context.Context, reaction *entity.Reaction) (string, string, error)
	GetByContent(ctx context.Context, contentID uuid.UUID, contentType string) ([]entity.Reaction, error)
	GetUserReaction(ctx context.Context, userID, contentID uuid.UUID, contentType string) (*entity.Reaction, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Toggle runs the three-way branch inside one transaction. The unique index
// on (content_id, content_type, user_id) turns a lost race on the "none
// exists" branch into a constraint error instead of a duplicate row.
func (r *reactionRepository) Toggle(ctx context.Context, reaction *entity.Reaction) (string, string, error) {
	var oldEmoji, newEmoji string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Use Find with slice to avoid "record not found" log noise from GORM's First()
		var existing []entity.Reaction
		err := tx.Where("user_id = ? AND content_id = ? AND content_type = ?",
			reaction.UserID, reaction.ContentID, reaction.ContentType).
			Limit(1).
			Find(&existing).Error
		if err != nil {
			return err
		}

		if len(existing) == 0 {
			// No reaction held -> create
			if err := tx.Create(reaction).Error; err != nil {
				return err
			}
			newEmoji = reaction.Emoji
			return nil
		}

		record := existing[0]
		oldEmoji = record.Emoji

		if record.Emoji == reaction.Emoji {
			// Same emoji -> toggle off
			if err := tx.Delete(&record).Error; err != nil {
				return err
			}
			return nil
		}

		// Different emoji -> replace in place
		record.Emoji = reaction.Emoji
		if err := tx.Save(&record).Error; err != nil {
			return err
		}
		reaction.ID = record.ID
		newEmoji = reaction.Emoji
		return nil
	})

	if err != nil {
		return "", "", err
	}
	return oldEmoji, newEmoji, nil
}

func (r *reactionRepository) GetByContent(ctx context.Context, contentID uuid.UUID, contentType string) ([]entity.Reaction, error) {
	var reactions []entity.Reaction
	err := r.db.WithContext(ctx).
		Where("content_id = ? AND content_type = ?", contentID, contentType).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "display_name")
		}).
		Order("created_at ASC").
		Find(&reactions).Error
	return reactions, err
}

func (r *reactionRepository) GetUserReaction(ctx context.Context, userID, contentID uuid.UUID, contentType string) (*entity.Reaction, error) {
	var reactions []entity.Reaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND content_id = ? AND content_type = ?", userID, contentID, contentType).
		Limit(1).
		Find(&reactions).Error
	if err != nil {
		return nil, err
	}
	if len(reactions) == 0 {
		return nil, nil
	}
	return &reactions[0], nil
}
