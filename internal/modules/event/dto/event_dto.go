package dto

import (
	"time"

	"github.com/google/uuid"
	commonDto "github.com/playverse/community-backend/pkg/dto"
)

type EventFilter struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

type EventResponse struct {
	ID                   uuid.UUID  `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	StartDate            time.Time  `json:"start_date"`
	EndDate              time.Time  `json:"end_date"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
	MaxParticipants      *int       `json:"max_participants,omitempty"`
	CurrentParticipants  int        `json:"current_participants"`
	Status               string     `json:"status"`
}

type PaginatedEventResponse struct {
	Data []EventResponse          `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}

type RegistrationStatusResponse struct {
	IsRegistered bool `json:"is_registered"`
}
