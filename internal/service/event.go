package service

import (
	"context"
	"fmt"
	"time"

	"parish/internal/domain"
	"parish/internal/dto"
	"parish/internal/store"

	"github.com/google/uuid"
)

type EventService struct {
	store *store.Store
}

func NewEventService(st *store.Store) *EventService {
	return &EventService{store: st}
}

func (e *EventService) Create(ctx context.Context, adminID domain.UserID, r dto.CreateEventRequest) (*domain.Event, error) {
	if r.Title == "" || r.StartsAt.IsZero() {
		return nil, fmt.Errorf("%w: title and startsAt are required", ErrInvalidRequest)
	}
	if r.Capacity < 0 {
		return nil, fmt.Errorf("%w: capacity must not be negative", ErrInvalidRequest)
	}

	now := time.Now().UTC()
	ev := &domain.Event{
		ID:          uuid.New(),
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		StartsAt:    r.StartsAt,
		Capacity:    r.Capacity,
		CreatedByID: adminID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := e.store.Events().Create(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (e *EventService) Update(ctx context.Context, id domain.EventID, r dto.CreateEventRequest) error {
	if r.Title == "" || r.StartsAt.IsZero() {
		return fmt.Errorf("%w: title and startsAt are required", ErrInvalidRequest)
	}
	err := e.store.Events().Update(ctx, &domain.Event{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		StartsAt:    r.StartsAt,
		Capacity:    r.Capacity,
	})
	if err == store.ErrRecordNotFound {
		return domain.ErrNotFound
	}
	return err
}

func (e *EventService) Delete(ctx context.Context, id domain.EventID) error {
	err := e.store.Events().Delete(ctx, id)
	if err == store.ErrRecordNotFound {
		return domain.ErrNotFound
	}
	return err
}

// List returns upcoming events with attendee counts and the caller's
// RSVP state.
func (e *EventService) List(ctx context.Context, userID domain.UserID) ([]dto.EventResponse, error) {
	events, err := e.store.Events().ListUpcoming(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	out := make([]dto.EventResponse, 0, len(events))
	for _, ev := range events {
		attendees, err := e.store.RSVPs().CountByEvent(ctx, ev.ID)
		if err != nil {
			return nil, err
		}
		rsvped, err := e.store.RSVPs().Exists(ctx, ev.ID, userID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.EventResponse{
			ID:          ev.ID.String(),
			Title:       ev.Title,
			Description: ev.Description,
			Location:    ev.Location,
			StartsAt:    ev.StartsAt,
			Capacity:    ev.Capacity,
			Attendees:   attendees,
			RSVPed:      rsvped,
		})
	}
	return out, nil
}

// RSVP registers the caller for an event. At most one RSVP per
// (user, event); a repeat is a no-op success.
func (e *EventService) RSVP(ctx context.Context, userID domain.UserID, eventID domain.EventID) error {
	return e.store.WithTx(ctx, func(tx *store.Store) error {
		ev, err := tx.Events().GetByID(ctx, eventID)
		if err == store.ErrRecordNotFound {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}

		if ev.Capacity > 0 {
			n, err := tx.RSVPs().CountByEvent(ctx, eventID)
			if err != nil {
				return err
			}
			already, err := tx.RSVPs().Exists(ctx, eventID, userID)
			if err != nil {
				return err
			}
			if !already && n >= int64(ev.Capacity) {
				return domain.ErrNoSlots
			}
		}

		return tx.RSVPs().Upsert(ctx, &domain.RSVP{EventID: eventID, UserID: userID})
	})
}

func (e *EventService) CancelRSVP(ctx context.Context, userID domain.UserID, eventID domain.EventID) error {
	return e.store.RSVPs().Delete(ctx, eventID, userID)
}
