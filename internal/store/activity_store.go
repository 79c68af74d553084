package store

import (
	"context"
	"time"

	"parish/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityStore struct{ db *gorm.DB }

func (s *Store) Activity() *ActivityStore { return &ActivityStore{db: s.DB} }

func (a *ActivityStore) Append(ctx context.Context, row *domain.ActivityLog) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return a.db.WithContext(ctx).Create(row).Error
}

// ListUnread applies the visibility filter at query time: admins see
// every unread row, everyone else only PARISHIONER-tagged ones.
func (a *ActivityStore) ListUnread(ctx context.Context, role domain.Role) ([]domain.ActivityLog, error) {
	q := a.db.WithContext(ctx).Where("read = ?", false)
	if !role.AtLeast(domain.RoleAdmin) {
		q = q.Where("type = ?", domain.ActivityParishioner)
	}
	var out []domain.ActivityLog
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

// MarkAllRead flips the caller's unread rows. Idempotent.
func (a *ActivityStore) MarkAllRead(ctx context.Context, userID domain.UserID) error {
	return a.db.WithContext(ctx).Model(&domain.ActivityLog{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

func (a *ActivityStore) CountUnread(ctx context.Context, userID domain.UserID) (int64, error) {
	var n int64
	err := a.db.WithContext(ctx).Model(&domain.ActivityLog{}).
		Where("user_id = ? AND read = ?", userID, false).Count(&n).Error
	return n, err
}

type NotificationStore struct{ db *gorm.DB }

func (s *Store) Notifications() *NotificationStore { return &NotificationStore{db: s.DB} }

func (n *NotificationStore) Create(ctx context.Context, sn *domain.SystemNotification) error {
	if sn.ID == uuid.Nil {
		sn.ID = uuid.New()
	}
	if sn.CreatedAt.IsZero() {
		sn.CreatedAt = time.Now().UTC()
	}
	return n.db.WithContext(ctx).Create(sn).Error
}

// ListActive returns banners that have not expired and whose audience
// matches the caller's role (empty audience means everyone).
func (n *NotificationStore) ListActive(ctx context.Context, role domain.Role, now time.Time) ([]domain.SystemNotification, error) {
	var out []domain.SystemNotification
	err := n.db.WithContext(ctx).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Where("audience = ? OR audience = ?", "", role).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (n *NotificationStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := n.db.WithContext(ctx).Delete(&domain.SystemNotification{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
