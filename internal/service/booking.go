package service

import (
	"context"
	"fmt"
	"time"

	"parish/internal/domain"
	"parish/internal/dto"
	"parish/internal/notify"
	"parish/internal/observability/metrics"
	"parish/internal/store"

	"github.com/google/uuid"
)

type BookingService struct {
	store    *store.Store
	registry *notify.Registry
}

func NewBookingService(st *store.Store, registry *notify.Registry) *BookingService {
	return &BookingService{store: st, registry: registry}
}

func (b *BookingService) CreateMass(ctx context.Context, adminID domain.UserID, r dto.CreateMassRequest) (*domain.Mass, error) {
	if r.Title == "" || r.ScheduledAt.IsZero() {
		return nil, fmt.Errorf("%w: title and scheduledAt are required", ErrInvalidRequest)
	}
	if r.AvailableIntentionsSlots < 0 || r.AvailableThanksgivingsSlots < 0 {
		return nil, fmt.Errorf("%w: slot counts must not be negative", ErrInvalidRequest)
	}

	now := time.Now().UTC()
	mass := &domain.Mass{
		ID:                          uuid.New(),
		Title:                       r.Title,
		ScheduledAt:                 r.ScheduledAt,
		AvailableIntentionsSlots:    r.AvailableIntentionsSlots,
		AvailableThanksgivingsSlots: r.AvailableThanksgivingsSlots,
		Status:                      domain.MassAvailable,
		CreatedByID:                 adminID,
		CreatedAt:                   now,
		UpdatedAt:                   now,
	}
	if mass.AvailableIntentionsSlots <= 0 && mass.AvailableThanksgivingsSlots <= 0 {
		mass.Status = domain.MassFull
	}
	if err := b.store.Masses().Create(ctx, mass); err != nil {
		return nil, err
	}
	return mass, nil
}

func (b *BookingService) ListMasses(ctx context.Context) ([]domain.Mass, error) {
	return b.store.Masses().ListUpcoming(ctx, time.Now().UTC().Add(-24*time.Hour))
}

func (b *BookingService) GetMass(ctx context.Context, id domain.MassID) (*domain.Mass, error) {
	mass, err := b.store.Masses().GetByID(ctx, id)
	if err == store.ErrRecordNotFound {
		return nil, domain.ErrMassNotFound
	}
	return mass, err
}

// BookIntention reserves one intention slot. The guarded decrement,
// booking insert and status recompute run in one transaction; any
// failure rolls the whole thing back.
func (b *BookingService) BookIntention(ctx context.Context, userID domain.UserID, massID domain.MassID, name, intention string) (*domain.MassIntention, error) {
	if name == "" || intention == "" {
		return nil, fmt.Errorf("%w: name and intention are required", ErrInvalidRequest)
	}

	mi := &domain.MassIntention{
		ID:        uuid.New(),
		MassID:    massID,
		UserID:    userID,
		Name:      name,
		Intention: intention,
		CreatedAt: time.Now().UTC(),
	}
	err := b.store.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.Masses().DecrementSlot(ctx, massID, store.IntentionPool); err != nil {
			return err
		}
		if err := tx.Bookings().CreateIntention(ctx, mi); err != nil {
			return err
		}
		if err := tx.Masses().RefreshStatus(ctx, massID); err != nil {
			return err
		}
		return tx.Activity().Append(ctx, &domain.ActivityLog{
			UserID: userID,
			Type:   domain.ActivityParishioner,
			Action: "mass_intention_booked",
			Detail: intention,
		})
	})
	if err != nil {
		metrics.BookingsTotal.WithLabelValues("intention", "failure").Inc()
		return nil, err
	}

	metrics.BookingsTotal.WithLabelValues("intention", "success").Inc()
	b.registry.Publish(notify.Message{Kind: "activity", Body: "mass_intention_booked", UserID: userID.String()})
	return mi, nil
}

// BookThanksgiving reserves one thanksgiving slot; the booking starts
// PENDING until an admin reviews it.
func (b *BookingService) BookThanksgiving(ctx context.Context, userID domain.UserID, massID domain.MassID, description string) (*domain.Thanksgiving, error) {
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidRequest)
	}

	now := time.Now().UTC()
	t := &domain.Thanksgiving{
		ID:          uuid.New(),
		MassID:      massID,
		UserID:      userID,
		Description: description,
		Status:      domain.ApprovalPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := b.store.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.Masses().DecrementSlot(ctx, massID, store.ThanksgivingPool); err != nil {
			return err
		}
		if err := tx.Bookings().CreateThanksgiving(ctx, t); err != nil {
			return err
		}
		if err := tx.Masses().RefreshStatus(ctx, massID); err != nil {
			return err
		}
		return tx.Activity().Append(ctx, &domain.ActivityLog{
			UserID: userID,
			Type:   domain.ActivityParishioner,
			Action: "thanksgiving_booked",
			Detail: description,
		})
	})
	if err != nil {
		metrics.BookingsTotal.WithLabelValues("thanksgiving", "failure").Inc()
		return nil, err
	}

	metrics.BookingsTotal.WithLabelValues("thanksgiving", "success").Inc()
	b.registry.Publish(notify.Message{Kind: "activity", Body: "thanksgiving_booked", UserID: userID.String()})
	return t, nil
}

// ReviewThanksgiving flips a thanksgiving to APPROVED or REJECTED.
// Rejection does not restore the consumed slot.
func (b *BookingService) ReviewThanksgiving(ctx context.Context, adminID domain.UserID, id uuid.UUID, approve bool) error {
	status := domain.ApprovalApproved
	if !approve {
		status = domain.ApprovalRejected
	}
	err := b.store.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.Bookings().SetThanksgivingStatus(ctx, id, status); err != nil {
			if err == store.ErrRecordNotFound {
				return domain.ErrNotFound
			}
			return err
		}
		return tx.Activity().Append(ctx, &domain.ActivityLog{
			UserID: adminID,
			Type:   domain.ActivityAdmin,
			Action: "thanksgiving_reviewed",
			Detail: string(status),
		})
	})
	return err
}

func (b *BookingService) ListMassIntentions(ctx context.Context, massID domain.MassID) ([]domain.MassIntention, error) {
	return b.store.Bookings().ListIntentionsByMass(ctx, massID)
}

func (b *BookingService) ListMassThanksgivings(ctx context.Context, massID domain.MassID) ([]domain.Thanksgiving, error) {
	return b.store.Bookings().ListThanksgivingsByMass(ctx, massID)
}

func (b *BookingService) ListUserIntentions(ctx context.Context, userID domain.UserID) ([]domain.MassIntention, error) {
	return b.store.Bookings().ListIntentionsByUser(ctx, userID)
}

func (b *BookingService) ListUserThanksgivings(ctx context.Context, userID domain.UserID) ([]domain.Thanksgiving, error) {
	return b.store.Bookings().ListThanksgivingsByUser(ctx, userID)
}
