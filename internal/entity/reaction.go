package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reaction holds a user's single emoji on a content reference. The unique
// index over (content_id, content_type, user_id) is what makes the toggle's
// at-most-one guarantee hold under concurrent writers.
type Reaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ContentID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_unique,priority:1;index:idx_reactions_lookup,priority:1" json:"content_id"`
	ContentType string    `gorm:"size:20;not null;uniqueIndex:idx_reactions_unique,priority:2;index:idx_reactions_lookup,priority:2" json:"content_type"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_unique,priority:3" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Emoji       string    `gorm:"size:10;not null" json:"emoji"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Reaction) TableName() string {
	return "reactions"
}

func (r *Reaction) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
