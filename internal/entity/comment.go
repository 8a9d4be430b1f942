package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a threaded comment on any content reference. Replies point at
// their parent via ParentID and must share the parent's content reference.
// Deletion is a one-way flag flip so existing replies keep a valid parent.
type Comment struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ContentID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_comments_content,priority:1" json:"content_id"`
	ContentType string     `gorm:"size:20;not null;index:idx_comments_content,priority:2" json:"content_type"`
	AuthorID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"author_id"`
	Author      User       `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	IsDeleted   bool       `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}
