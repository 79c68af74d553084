package store

import (
	"context"
	"time"

	"parish/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventStore struct{ db *gorm.DB }

func (s *Store) Events() *EventStore { return &EventStore{db: s.DB} }

func (e *EventStore) Create(ctx context.Context, ev *domain.Event) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	return e.db.WithContext(ctx).Create(ev).Error
}

func (e *EventStore) GetByID(ctx context.Context, id domain.EventID) (*domain.Event, error) {
	var ev domain.Event
	if err := e.db.WithContext(ctx).First(&ev, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &ev, nil
}

func (e *EventStore) ListUpcoming(ctx context.Context, from time.Time) ([]domain.Event, error) {
	var out []domain.Event
	err := e.db.WithContext(ctx).Where("starts_at >= ?", from).Order("starts_at").Find(&out).Error
	return out, err
}

func (e *EventStore) Update(ctx context.Context, ev *domain.Event) error {
	res := e.db.WithContext(ctx).Model(&domain.Event{}).
		Where("id = ?", ev.ID).
		Updates(map[string]any{
			"title":       ev.Title,
			"description": ev.Description,
			"location":    ev.Location,
			"starts_at":   ev.StartsAt,
			"capacity":    ev.Capacity,
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (e *EventStore) Delete(ctx context.Context, id domain.EventID) error {
	res := e.db.WithContext(ctx).Delete(&domain.Event{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

type RSVPStore struct{ db *gorm.DB }

func (s *Store) RSVPs() *RSVPStore { return &RSVPStore{db: s.DB} }

// Upsert inserts the (event, user) pair once; a repeat RSVP is a no-op
// thanks to the composite unique index and DO NOTHING.
func (r *RSVPStore) Upsert(ctx context.Context, rsvp *domain.RSVP) error {
	if rsvp.ID == uuid.Nil {
		rsvp.ID = uuid.New()
	}
	if rsvp.CreatedAt.IsZero() {
		rsvp.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(rsvp).Error
}

func (r *RSVPStore) Delete(ctx context.Context, eventID domain.EventID, userID domain.UserID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.RSVP{}, "event_id = ? AND user_id = ?", eventID, userID).Error
}

func (r *RSVPStore) CountByEvent(ctx context.Context, eventID domain.EventID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.RSVP{}).Where("event_id = ?", eventID).Count(&n).Error
	return n, err
}

func (r *RSVPStore) Exists(ctx context.Context, eventID domain.EventID, userID domain.UserID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.RSVP{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).Count(&n).Error
	return n > 0, err
}
