package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/playverse/community-backend/internal/entity"
	eventDto "github.com/playverse/community-backend/internal/modules/event/dto"
	eventRepo "github.com/playverse/community-backend/internal/modules/event/repository"
	"github.com/playverse/community-backend/pkg/apperror"
	commonDto "github.com/playverse/community-backend/pkg/dto"
	"gorm.io/gorm"
)

type EventService interface {
	ListEvents(ctx context.Context, filter eventDto.EventFilter) (*eventDto.PaginatedEventResponse, error)
	Register(ctx context.Context, userID, eventID uuid.UUID) error
	Unregister(ctx context.Context, userID, eventID uuid.UUID) error
	IsRegistered(ctx context.Context, userID, eventID uuid.UUID) (bool, error)
}

type eventService struct {
	repo eventRepo.EventRepository
}

func NewEventService(repo eventRepo.EventRepository) EventService {
	return &eventService{repo: repo}
}

func (s *eventService) ListEvents(ctx context.Context, filter eventDto.EventFilter) (*eventDto.PaginatedEventResponse, error) {
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}

	events, total, err := s.repo.List(ctx, (filter.Page-1)*filter.Limit, filter.Limit)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	responses := make([]eventDto.EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, mapToResponse(&event, now))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return &eventDto.PaginatedEventResponse{
		Data: responses,
		Meta: commonDto.PaginationMeta{
			CurrentPage: filter.Page,
			TotalPages:  totalPages,
			TotalItems:  total,
			Limit:       filter.Limit,
		},
	}, nil
}

func (s *eventService) Register(ctx context.Context, userID, eventID uuid.UUID) error {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return err
	}

	now := time.Now()
	if event.EffectiveStatus(now) != entity.EventStatusUpcoming {
		return fmt.Errorf("%w: event is not open for registration", apperror.ErrInvalidState)
	}
	if event.RegistrationDeadline != nil && now.After(*event.RegistrationDeadline) {
		return fmt.Errorf("%w: registration deadline has passed", apperror.ErrInvalidState)
	}

	return s.repo.Register(ctx, eventID, userID)
}

func (s *eventService) Unregister(ctx context.Context, userID, eventID uuid.UUID) error {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return err
	}

	if event.EffectiveStatus(time.Now()) != entity.EventStatusUpcoming {
		return fmt.Errorf("%w: registration can no longer be withdrawn", apperror.ErrInvalidState)
	}

	return s.repo.Unregister(ctx, eventID, userID)
}

func (s *eventService) IsRegistered(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	return s.repo.IsRegistered(ctx, eventID, userID)
}

func (s *eventService) findEvent(ctx context.Context, eventID uuid.UUID) (*entity.Event, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: event not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	return event, nil
}

func mapToResponse(event *entity.Event, now time.Time) eventDto.EventResponse {
	return eventDto.EventResponse{
		ID:                   event.ID,
		Title:                event.Title,
		Description:          event.Description,
		StartDate:            event.StartDate,
		EndDate:              event.EndDate,
		RegistrationDeadline: event.RegistrationDeadline,
		MaxParticipants:      event.MaxParticipants,
		CurrentParticipants:  event.CurrentParticipants,
		Status:               event.EffectiveStatus(now),
	}
}
