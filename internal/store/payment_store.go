package store

import (
	"context"
	"time"

	"parish/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStore struct{ db *gorm.DB }

func (s *Store) Payments() *PaymentStore { return &PaymentStore{db: s.DB} }

func (p *PaymentStore) Create(ctx context.Context, pay *domain.Payment) error {
	if pay.ID == uuid.Nil {
		pay.ID = uuid.New()
	}
	if pay.Status == "" {
		pay.Status = domain.PaymentPending
	}
	return p.db.WithContext(ctx).Create(pay).Error
}

func (p *PaymentStore) GetByID(ctx context.Context, id domain.PaymentID) (*domain.Payment, error) {
	var pay domain.Payment
	if err := p.db.WithContext(ctx).First(&pay, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &pay, nil
}

func (p *PaymentStore) GetByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	var pay domain.Payment
	if err := p.db.WithContext(ctx).First(&pay, "reference = ?", reference).Error; err != nil {
		if notFound(err) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &pay, nil
}

// ClaimReference persists the gateway reference, but only when the row
// has none yet. Done before the outbound initialize call so that
// verify/webhook lookups always find a row. Returns false when a
// concurrent initiate already claimed one; callers must re-read the row
// and use the stored reference instead.
func (p *PaymentStore) ClaimReference(ctx context.Context, id domain.PaymentID, reference string) (bool, error) {
	res := p.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("id = ? AND reference IS NULL", id).
		Updates(map[string]any{"reference": reference, "updated_at": time.Now().UTC()})
	return res.RowsAffected == 1, res.Error
}

// MarkStatusIfPending is the idempotent terminal transition:
//
//	UPDATE payments SET status = ? WHERE reference = ? AND status = 'PENDING'
//
// Zero rows affected means the payment was already terminal (or the
// reference unknown); callers decide whether that is a no-op or an
// error by loading the row.
func (p *PaymentStore) MarkStatusIfPending(ctx context.Context, reference string, status domain.PaymentStatus) (bool, error) {
	updates := map[string]any{"status": status, "updated_at": time.Now().UTC()}
	if status == domain.PaymentPaid {
		now := time.Now().UTC()
		updates["paid_at"] = &now
	}
	res := p.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("reference = ? AND status = ?", reference, domain.PaymentPending).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (p *PaymentStore) ListByUser(ctx context.Context, userID domain.UserID) ([]domain.Payment, error) {
	var out []domain.Payment
	err := p.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (p *PaymentStore) List(ctx context.Context) ([]domain.Payment, error) {
	var out []domain.Payment
	err := p.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (p *PaymentStore) TotalPaid(ctx context.Context) (int64, error) {
	var total int64
	err := p.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("status = ?", domain.PaymentPaid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

type GoalStore struct{ db *gorm.DB }

func (s *Store) Goals() *GoalStore { return &GoalStore{db: s.DB} }

func (g *GoalStore) Create(ctx context.Context, goal *domain.PaymentGoal) error {
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	return g.db.WithContext(ctx).Create(goal).Error
}

func (g *GoalStore) List(ctx context.Context) ([]domain.PaymentGoal, error) {
	var out []domain.PaymentGoal
	err := g.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (g *GoalStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := g.db.WithContext(ctx).Delete(&domain.PaymentGoal{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// ApplyPaid credits amount to every goal whose category matches and
// whose date window covers now. Runs in the transaction that flips the
// payment to PAID.
func (g *GoalStore) ApplyPaid(ctx context.Context, category string, amount int64, now time.Time) error {
	return g.db.WithContext(ctx).Model(&domain.PaymentGoal{}).
		Where("category = ?", category).
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now).
		Updates(map[string]any{
			"current_amount": gorm.Expr("current_amount + ?", amount),
			"updated_at":     now,
		}).Error
}
