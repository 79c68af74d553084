package store

import (
	"context"
	"time"

	"parish/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStore struct{ db *gorm.DB }

func (s *Store) Bookings() *BookingStore { return &BookingStore{db: s.DB} }

func (b *BookingStore) CreateIntention(ctx context.Context, mi *domain.MassIntention) error {
	if mi.ID == uuid.Nil {
		mi.ID = uuid.New()
	}
	return b.db.WithContext(ctx).Create(mi).Error
}

func (b *BookingStore) CreateThanksgiving(ctx context.Context, t *domain.Thanksgiving) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = domain.ApprovalPending
	}
	return b.db.WithContext(ctx).Create(t).Error
}

func (b *BookingStore) ListIntentionsByMass(ctx context.Context, massID domain.MassID) ([]domain.MassIntention, error) {
	var out []domain.MassIntention
	err := b.db.WithContext(ctx).Where("mass_id = ?", massID).Order("created_at").Find(&out).Error
	return out, err
}

func (b *BookingStore) ListIntentionsByUser(ctx context.Context, userID domain.UserID) ([]domain.MassIntention, error) {
	var out []domain.MassIntention
	err := b.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (b *BookingStore) ListThanksgivingsByMass(ctx context.Context, massID domain.MassID) ([]domain.Thanksgiving, error) {
	var out []domain.Thanksgiving
	err := b.db.WithContext(ctx).Where("mass_id = ?", massID).Order("created_at").Find(&out).Error
	return out, err
}

func (b *BookingStore) ListThanksgivingsByUser(ctx context.Context, userID domain.UserID) ([]domain.Thanksgiving, error) {
	var out []domain.Thanksgiving
	err := b.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (b *BookingStore) GetThanksgiving(ctx context.Context, id uuid.UUID) (*domain.Thanksgiving, error) {
	var t domain.Thanksgiving
	if err := b.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &t, nil
}

// SetThanksgivingStatus flips a PENDING thanksgiving to its reviewed
// state. Slots are not restored on rejection.
func (b *BookingStore) SetThanksgivingStatus(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus) error {
	res := b.db.WithContext(ctx).Model(&domain.Thanksgiving{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (b *BookingStore) CountPendingThanksgivings(ctx context.Context) (int64, error) {
	var n int64
	err := b.db.WithContext(ctx).Model(&domain.Thanksgiving{}).
		Where("status = ?", domain.ApprovalPending).Count(&n).Error
	return n, err
}

func (b *BookingStore) CountIntentionsByUser(ctx context.Context, userID domain.UserID) (int64, error) {
	var n int64
	err := b.db.WithContext(ctx).Model(&domain.MassIntention{}).
		Where("user_id = ?", userID).Count(&n).Error
	return n, err
}
