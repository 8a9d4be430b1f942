package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationCommentReply   = "comment_reply"
	NotificationFollowRequest  = "follow_request"
	NotificationFollowAccepted = "follow_accepted"
	NotificationFollowRejected = "follow_rejected"
)

// Notification is a write-only side effect record. Reads always exclude
// soft-deleted rows; the flag exists so a cancelled follow request can
// retract its still-actionable notification.
type Notification struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	ActorID     *uuid.UUID `gorm:"type:uuid" json:"actor_id,omitempty"`
	Actor       *User      `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	Type        string     `gorm:"size:50;not null" json:"type"`
	Title       string     `gorm:"size:255" json:"title"`
	Message     string     `gorm:"type:text" json:"message"`
	ContentID   *uuid.UUID `gorm:"type:uuid" json:"content_id,omitempty"`
	ContentType *string    `gorm:"size:20" json:"content_type,omitempty"`
	IsRead      bool       `gorm:"not null;default:false" json:"is_read"`
	DeletedAt   *time.Time `gorm:"index" json:"-"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (n *Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID, err = uuid.NewV7()
	}
	return
}
