package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
)

// Event carries a denormalized CurrentParticipants counter that must equal
// the number of event_registrations rows at all times; both sides are only
// ever mutated inside one transaction.
type Event struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title                string     `gorm:"size:255;not null" json:"title"`
	Description          string     `gorm:"type:text" json:"description"`
	StartDate            time.Time  `gorm:"not null;index" json:"start_date"`
	EndDate              time.Time  `gorm:"not null" json:"end_date"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
	MaxParticipants      *int       `json:"max_participants,omitempty"`
	CurrentParticipants  int        `gorm:"not null;default:0" json:"current_participants"`
	StatusOverride       *string    `gorm:"size:20" json:"status_override,omitempty"`
	DeletedAt            *time.Time `gorm:"index" json:"deleted_at,omitempty"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (e *Event) TableName() string {
	return "events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID, err = uuid.NewV7()
	}
	return
}

// EffectiveStatus derives the event status from wall-clock time instead of a
// stored column. An override always wins. StartDate and EndDate are inclusive
// bounds of the ongoing window.
func (e *Event) EffectiveStatus(now time.Time) string {
	if e.StatusOverride != nil && *e.StatusOverride != "" {
		return *e.StatusOverride
	}
	if now.Before(e.StartDate) {
		return EventStatusUpcoming
	}
	if now.After(e.EndDate) {
		return EventStatusCompleted
	}
	return EventStatusOngoing
}

// EventRegistration is the authoritative row set behind CurrentParticipants.
type EventRegistration struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_registrations_pair,priority:1" json:"event_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_registrations_pair,priority:2;index" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *EventRegistration) TableName() string {
	return "event_registrations"
}

func (r *EventRegistration) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
