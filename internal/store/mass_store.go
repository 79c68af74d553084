package store

import (
	"context"
	"time"

	"parish/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MassStore struct{ db *gorm.DB }

func (s *Store) Masses() *MassStore { return &MassStore{db: s.DB} }

func (m *MassStore) Create(ctx context.Context, mass *domain.Mass) error {
	if mass.ID == uuid.Nil {
		mass.ID = uuid.New()
	}
	if mass.Status == "" {
		mass.Status = domain.MassAvailable
	}
	return m.db.WithContext(ctx).Create(mass).Error
}

func (m *MassStore) GetByID(ctx context.Context, id domain.MassID) (*domain.Mass, error) {
	var mass domain.Mass
	if err := m.db.WithContext(ctx).First(&mass, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &mass, nil
}

func (m *MassStore) ListUpcoming(ctx context.Context, from time.Time) ([]domain.Mass, error) {
	var out []domain.Mass
	err := m.db.WithContext(ctx).
		Where("scheduled_at >= ?", from).
		Order("scheduled_at").
		Find(&out).Error
	return out, err
}

// SlotPool selects which capacity counter a booking draws from.
type SlotPool string

const (
	IntentionPool    SlotPool = "available_intentions_slots"
	ThanksgivingPool SlotPool = "available_thanksgivings_slots"
)

// DecrementSlot performs the guarded decrement:
//
//	UPDATE masses SET <pool> = <pool> - 1 WHERE id = ? AND <pool> > 0
//
// The WHERE guard is what makes two concurrent bookings against a
// single remaining slot resolve to one success; a plain read-then-write
// would let both through. Returns domain.ErrNoSlots when the pool is
// exhausted and domain.ErrMassNotFound when the mass does not exist.
func (m *MassStore) DecrementSlot(ctx context.Context, id domain.MassID, pool SlotPool) error {
	col := string(pool)
	res := m.db.WithContext(ctx).Model(&domain.Mass{}).
		Where("id = ? AND "+col+" > 0", id).
		UpdateColumn(col, gorm.Expr(col+" - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := m.db.WithContext(ctx).Model(&domain.Mass{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrMassNotFound
		}
		return domain.ErrNoSlots
	}
	return nil
}

// RefreshStatus recomputes the derived status from the two counters.
// Must run in the same transaction as the counter mutation.
func (m *MassStore) RefreshStatus(ctx context.Context, id domain.MassID) error {
	return m.db.WithContext(ctx).Model(&domain.Mass{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": gorm.Expr(
				"CASE WHEN available_intentions_slots <= 0 AND available_thanksgivings_slots <= 0 THEN ? ELSE ? END",
				domain.MassFull, domain.MassAvailable),
			"updated_at": time.Now().UTC(),
		}).Error
}

func (m *MassStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := m.db.WithContext(ctx).Model(&domain.Mass{}).Count(&n).Error
	return n, err
}
