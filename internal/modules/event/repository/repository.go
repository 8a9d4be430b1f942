package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/playverse/community-backend/internal/entity"
	"github.com/playverse/community-backend/pkg/apperror"
	"gorm.io/gorm"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	List(ctx context.Context, offset, limit int) ([]entity.Event, int64, error)
	// Register inserts the registration row and bumps the participant counter
	// in one transaction; both commit or neither does.
	Register(ctx context.Context, eventID, userID uuid.UUID) error
	Unregister(ctx context.Context, eventID, userID uuid.UUID) error
	IsRegistered(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
	CountRegistrations(ctx context.Context, eventID uuid.UUID) (int64, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	var event entity.Event
	if err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context, offset, limit int) ([]entity.Event, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Event{}).Where("deleted_at IS NULL")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []entity.Event
	err := query.Order("start_date ASC").Offset(offset).Limit(limit).Find(&events).Error
	return events, total, err
}

func (r *eventRepository) Register(ctx context.Context, eventID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.EventRegistration{}).
			Where("event_id = ? AND user_id = ?", eventID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: already registered for this event", apperror.ErrConflict)
		}

		if err := tx.Create(&entity.EventRegistration{
			EventID: eventID,
			UserID:  userID,
		}).Error; err != nil {
			return err
		}

		// The guarded UPDATE is the capacity gate: a concurrent registration
		// that would overshoot max_participants matches zero rows and rolls
		// the whole transaction back.
		res := tx.Model(&entity.Event{}).
			Where("id = ? AND (max_participants IS NULL OR current_participants < max_participants)", eventID).
			UpdateColumn("current_participants", gorm.Expr("current_participants + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: event is full", apperror.ErrInvalidState)
		}
		return nil
	})
}

func (r *eventRepository) Unregister(ctx context.Context, eventID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("event_id = ? AND user_id = ?", eventID, userID).
			Delete(&entity.EventRegistration{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: not registered for this event", apperror.ErrInvalidState)
		}

		return tx.Model(&entity.Event{}).
			Where("id = ?", eventID).
			UpdateColumn("current_participants", gorm.Expr("current_participants - ?", 1)).Error
	})
}

func (r *eventRepository) IsRegistered(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.EventRegistration{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *eventRepository) CountRegistrations(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.EventRegistration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
