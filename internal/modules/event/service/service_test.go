package event

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/playverse/community-backend/internal/entity"
	eventDto "github.com/playverse/community-backend/internal/modules/event/dto"
	eventRepo "github.com/playverse/community-backend/internal/modules/event/repository"
	"github.com/playverse/community-backend/internal/testutil"
	"github.com/playverse/community-backend/pkg/apperror"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type eventFixture struct {
	db    *gorm.DB
	repo  eventRepo.EventRepository
	svc   EventService
	alice *entity.User
	bob   *entity.User
}

func newEventFixture(t *testing.T) *eventFixture {
	t.Helper()

	db := testutil.NewTestDB(t)
	repo := eventRepo.NewEventRepository(db)

	return &eventFixture{
		db:    db,
		repo:  repo,
		svc:   NewEventService(repo),
		alice: testutil.NewTestUser(t, db, "alice"),
		bob:   testutil.NewTestUser(t, db, "bob"),
	}
}

func (f *eventFixture) createEvent(t *testing.T, mutate func(*entity.Event)) *entity.Event {
	t.Helper()

	event := &entity.Event{
		Title:       "Community Cup",
		Description: "Weekly tournament",
		StartDate:   time.Now().Add(48 * time.Hour),
		EndDate:     time.Now().Add(72 * time.Hour),
	}
	if mutate != nil {
		mutate(event)
	}
	require.NoError(t, f.repo.Create(context.Background(), event))
	return event
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestRegister_HappyPath(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, nil)

	require.NoError(t, f.svc.Register(ctx, f.alice.ID, event.ID))

	registered, err := f.svc.IsRegistered(ctx, f.alice.ID, event.ID)
	require.NoError(t, err)
	require.True(t, registered)

	// The denormalized counter tracks the registration rows.
	updated, err := f.repo.FindByID(ctx, event.ID)
	require.NoError(t, err)
	require.Equal(t, 1, updated.CurrentParticipants)

	rows, err := f.repo.CountRegistrations(ctx, event.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)
}

func TestRegister_Duplicate(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, nil)

	require.NoError(t, f.svc.Register(ctx, f.alice.ID, event.ID))
	err := f.svc.Register(ctx, f.alice.ID, event.ID)
	require.ErrorIs(t, err, apperror.ErrConflict)

	updated, err := f.repo.FindByID(ctx, event.ID)
	require.NoError(t, err)
	require.Equal(t, 1, updated.CurrentParticipants)
}

func TestRegister_CapacityGate(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, func(e *entity.Event) {
		e.MaxParticipants = intPtr(1)
	})

	require.NoError(t, f.svc.Register(ctx, f.alice.ID, event.ID))

	err := f.svc.Register(ctx, f.bob.ID, event.ID)
	require.ErrorIs(t, err, apperror.ErrInvalidState)

	// The rejected registration left no row behind.
	registered, err := f.svc.IsRegistered(ctx, f.bob.ID, event.ID)
	require.NoError(t, err)
	require.False(t, registered)

	rows, err := f.repo.CountRegistrations(ctx, event.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	// Someone dropping out frees the slot.
	require.NoError(t, f.svc.Unregister(ctx, f.alice.ID, event.ID))
	require.NoError(t, f.svc.Register(ctx, f.bob.ID, event.ID))
}

func TestRegister_DeadlinePassed(t *testing.T) {
	f := newEventFixture(t)
	event := f.createEvent(t, func(e *entity.Event) {
		e.RegistrationDeadline = timePtr(time.Now().Add(-time.Hour))
	})

	err := f.svc.Register(context.Background(), f.alice.ID, event.ID)
	require.ErrorIs(t, err, apperror.ErrInvalidState)
}

func TestRegister_EventNotUpcoming(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()

	ongoing := f.createEvent(t, func(e *entity.Event) {
		e.StartDate = time.Now().Add(-time.Hour)
		e.EndDate = time.Now().Add(time.Hour)
	})
	err := f.svc.Register(ctx, f.alice.ID, ongoing.ID)
	require.ErrorIs(t, err, apperror.ErrInvalidState)

	// An admin override trumps the computed window.
	overridden := f.createEvent(t, func(e *entity.Event) {
		e.StatusOverride = strPtr(entity.EventStatusCompleted)
	})
	err = f.svc.Register(ctx, f.alice.ID, overridden.ID)
	require.ErrorIs(t, err, apperror.ErrInvalidState)
}

func TestRegister_EventMissingOrDeleted(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()

	err := f.svc.Register(ctx, f.alice.ID, uuid.New())
	require.ErrorIs(t, err, apperror.ErrNotFound)

	deleted := f.createEvent(t, func(e *entity.Event) {
		e.DeletedAt = timePtr(time.Now())
	})
	err = f.svc.Register(ctx, f.alice.ID, deleted.ID)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUnregister(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, nil)

	err := f.svc.Unregister(ctx, f.alice.ID, event.ID)
	require.ErrorIs(t, err, apperror.ErrInvalidState)

	require.NoError(t, f.svc.Register(ctx, f.alice.ID, event.ID))
	require.NoError(t, f.svc.Unregister(ctx, f.alice.ID, event.ID))

	registered, err := f.svc.IsRegistered(ctx, f.alice.ID, event.ID)
	require.NoError(t, err)
	require.False(t, registered)

	updated, err := f.repo.FindByID(ctx, event.ID)
	require.NoError(t, err)
	require.Equal(t, 0, updated.CurrentParticipants)
}

func TestUnregister_AfterStartRefused(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, nil)

	require.NoError(t, f.svc.Register(ctx, f.alice.ID, event.ID))

	// Move the event into its ongoing window.
	require.NoError(t, f.db.Model(&entity.Event{}).
		Where("id = ?", event.ID).
		Update("start_date", time.Now().Add(-time.Hour)).Error)

	err := f.svc.Unregister(ctx, f.alice.ID, event.ID)
	require.ErrorIs(t, err, apperror.ErrInvalidState)
}

func TestListEvents(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()

	f.createEvent(t, func(e *entity.Event) { e.Title = "Later" })
	f.createEvent(t, func(e *entity.Event) {
		e.Title = "Sooner"
		e.StartDate = time.Now().Add(24 * time.Hour)
		e.EndDate = time.Now().Add(30 * time.Hour)
	})
	f.createEvent(t, func(e *entity.Event) {
		e.Title = "Hidden"
		e.DeletedAt = timePtr(time.Now())
	})

	resp, err := f.svc.ListEvents(ctx, eventDto.EventFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
	require.Equal(t, "Sooner", resp.Data[0].Title)
	require.Equal(t, entity.EventStatusUpcoming, resp.Data[0].Status)
	require.Equal(t, int64(2), resp.Meta.TotalItems)
}

func TestEffectiveStatus(t *testing.T) {
	now := time.Now()
	event := &entity.Event{
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
	}

	require.Equal(t, entity.EventStatusOngoing, event.EffectiveStatus(now))
	require.Equal(t, entity.EventStatusUpcoming, event.EffectiveStatus(now.Add(-2*time.Hour)))
	require.Equal(t, entity.EventStatusCompleted, event.EffectiveStatus(now.Add(2*time.Hour)))

	// Bounds are inclusive.
	require.Equal(t, entity.EventStatusOngoing, event.EffectiveStatus(event.StartDate))
	require.Equal(t, entity.EventStatusOngoing, event.EffectiveStatus(event.EndDate))

	event.StatusOverride = strPtr(entity.EventStatusCompleted)
	require.Equal(t, entity.EventStatusCompleted, event.EffectiveStatus(now))
}
