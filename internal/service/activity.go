package service

import (
	"context"
	"fmt"
	"time"

	"parish/internal/domain"
	"parish/internal/dto"
	"parish/internal/notify"
	"parish/internal/session"
	"parish/internal/store"

	"github.com/google/uuid"
)

type ActivityService struct {
	store    *store.Store
	registry *notify.Registry
}

func NewActivityService(st *store.Store, registry *notify.Registry) *ActivityService {
	return &ActivityService{store: st, registry: registry}
}

// ListUnread applies role visibility at query time: admins and
// superadmins see every unread row, parishioners only PARISHIONER ones.
func (a *ActivityService) ListUnread(ctx context.Context, sess *session.Session) ([]domain.ActivityLog, error) {
	return a.store.Activity().ListUnread(ctx, sess.Role)
}

// MarkAllRead flips all of the caller's unread rows. Idempotent.
func (a *ActivityService) MarkAllRead(ctx context.Context, sess *session.Session) error {
	return a.store.Activity().MarkAllRead(ctx, sess.UserID)
}

// Banner returns the active system notifications for the caller's role.
func (a *ActivityService) Banner(ctx context.Context, role domain.Role) ([]domain.SystemNotification, error) {
	return a.store.Notifications().ListActive(ctx, role, time.Now().UTC())
}

func (a *ActivityService) CreateNotification(ctx context.Context, r dto.CreateNotificationRequest) (*domain.SystemNotification, error) {
	if r.Message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidRequest)
	}
	sn := &domain.SystemNotification{
		ID:        uuid.New(),
		Message:   r.Message,
		Audience:  domain.Role(r.Audience),
		ExpiresAt: r.ExpiresAt,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.store.Notifications().Create(ctx, sn); err != nil {
		return nil, err
	}
	a.registry.Publish(notify.Message{Kind: "banner", Body: sn.Message})
	return sn, nil
}

func (a *ActivityService) DeleteNotification(ctx context.Context, id uuid.UUID) error {
	err := a.store.Notifications().Delete(ctx, id)
	if err == store.ErrRecordNotFound {
		return domain.ErrNotFound
	}
	return err
}

// Dashboard aggregates role-dependent stats.
func (a *ActivityService) Dashboard(ctx context.Context, sess *session.Session) (any, error) {
	if sess.Role.AtLeast(domain.RoleAdmin) {
		members, err := a.store.Users().Count(ctx)
		if err != nil {
			return nil, err
		}
		masses, err := a.store.Masses().Count(ctx)
		if err != nil {
			return nil, err
		}
		pending, err := a.store.Bookings().CountPendingThanksgivings(ctx)
		if err != nil {
			return nil, err
		}
		totalPaid, err := a.store.Payments().TotalPaid(ctx)
		if err != nil {
			return nil, err
		}
		return dto.AdminDashboard{
			Members:              members,
			Masses:               masses,
			PendingThanksgivings: pending,
			TotalPaidAmount:      totalPaid,
		}, nil
	}

	intentions, err := a.store.Bookings().CountIntentionsByUser(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	payments, err := a.store.Payments().ListByUser(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	unread, err := a.store.Activity().CountUnread(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	return dto.MemberDashboard{
		MyIntentions: intentions,
		MyPayments:   len(payments),
		UnreadCount:  unread,
	}, nil
}
