package service

import (
	"context"
	"fmt"
	"time"

	"parish/internal/domain"
	"parish/internal/dto"
	"parish/internal/notify"
	"parish/internal/observability/metrics"
	"parish/internal/paystack"
	"parish/internal/store"

	"github.com/google/uuid"
)

// Gateway is the slice of the Paystack client the payment service
// needs; tests substitute a stub.
type Gateway interface {
	Initialize(ctx context.Context, req paystack.InitializeRequest) (*paystack.InitializeData, error)
	Verify(ctx context.Context, reference string) (*paystack.VerifyData, error)
	ValidSignature(body []byte, signature string) bool
}

type PaymentService struct {
	store       *store.Store
	gateway     Gateway
	registry    *notify.Registry
	callbackURL string
}

func NewPaymentService(st *store.Store, gw Gateway, registry *notify.Registry, callbackURL string) *PaymentService {
	return &PaymentService{store: st, gateway: gw, registry: registry, callbackURL: callbackURL}
}

func (p *PaymentService) Create(ctx context.Context, userID domain.UserID, r dto.CreatePaymentRequest) (*domain.Payment, error) {
	typ := domain.PaymentType(r.Type)
	if typ != domain.PaymentDonation && typ != domain.PaymentOffering {
		return nil, fmt.Errorf("%w: type must be DONATION or OFFERING", ErrInvalidRequest)
	}
	if r.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidRequest)
	}
	if r.Category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidRequest)
	}

	now := time.Now().UTC()
	pay := &domain.Payment{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      typ,
		Category:  r.Category,
		Amount:    r.Amount,
		Status:    domain.PaymentPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.store.Payments().Create(ctx, pay); err != nil {
		return nil, err
	}
	return pay, nil
}

// Initiate assigns the gateway reference and persists it before the
// outbound call, so verify/webhook lookups by reference always find a
// row even when the initialize call fails afterwards. A transport
// failure leaves the payment PENDING for later reconciliation.
func (p *PaymentService) Initiate(ctx context.Context, userID domain.UserID, paymentID domain.PaymentID) (*dto.InitiatePaymentResponse, error) {
	pay, err := p.store.Payments().GetByID(ctx, paymentID)
	if err == store.ErrRecordNotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if pay.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	if pay.Status == domain.PaymentPaid {
		return nil, domain.ErrAlreadyPaid
	}

	reference := pay.Reference
	if reference == nil {
		ref := fmt.Sprintf("%s-%s-%d", pay.Type, pay.ID, time.Now().UnixMilli())
		claimed, err := p.store.Payments().ClaimReference(ctx, pay.ID, ref)
		if err != nil {
			return nil, err
		}
		if claimed {
			reference = &ref
		} else {
			// Lost a race with a concurrent initiate; the stored
			// reference is the one the gateway must see.
			pay, err = p.store.Payments().GetByID(ctx, pay.ID)
			if err != nil {
				return nil, err
			}
			reference = pay.Reference
		}
	}

	user, err := p.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	init, err := p.gateway.Initialize(ctx, paystack.InitializeRequest{
		Email:       user.Email,
		Amount:      pay.Amount,
		Reference:   *reference,
		CallbackURL: p.callbackURL,
		Metadata: map[string]any{
			"paymentId": pay.ID.String(),
			"type":      string(pay.Type),
			"category":  pay.Category,
		},
	})
	if err != nil {
		return nil, err
	}

	return &dto.InitiatePaymentResponse{
		Reference:        *reference,
		AuthorizationURL: init.AuthorizationURL,
	}, nil
}

// Verify is the synchronous user-redirect path. It asks the gateway for
// the transaction state and applies the idempotent status update.
func (p *PaymentService) Verify(ctx context.Context, reference string) (*dto.VerifyPaymentResponse, error) {
	if _, err := p.store.Payments().GetByReference(ctx, reference); err != nil {
		if err == store.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	data, err := p.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}

	status, err := p.applyGatewayStatus(ctx, reference, data.Status, "verify")
	if err != nil {
		return nil, err
	}
	return &dto.VerifyPaymentResponse{Reference: reference, Status: string(status)}, nil
}

// HandleWebhook is the asynchronous server-to-server path. The HMAC is
// checked over the exact raw body before anything else; a mismatch
// rejects the delivery without touching state. The webhook then
// converges on the same status update as Verify.
func (p *PaymentService) HandleWebhook(ctx context.Context, body []byte, signature string, event paystack.WebhookEvent) error {
	if !p.gateway.ValidSignature(body, signature) {
		metrics.WebhooksTotal.WithLabelValues("bad_signature").Inc()
		return domain.ErrBadSignature
	}

	if event.Data.Reference == "" {
		metrics.WebhooksTotal.WithLabelValues("ignored").Inc()
		return nil
	}

	// Trust the signature for authenticity but re-verify the state with
	// the gateway before applying it.
	data, err := p.gateway.Verify(ctx, event.Data.Reference)
	if err != nil {
		metrics.WebhooksTotal.WithLabelValues("verify_failed").Inc()
		return err
	}

	if _, err := p.applyGatewayStatus(ctx, event.Data.Reference, data.Status, "webhook"); err != nil {
		if err == domain.ErrNotFound {
			// Unknown reference: not ours, acknowledge and drop.
			metrics.WebhooksTotal.WithLabelValues("ignored").Inc()
			return nil
		}
		return err
	}
	metrics.WebhooksTotal.WithLabelValues("processed").Inc()
	return nil
}

// applyGatewayStatus maps the gateway's transaction state onto the
// payment state machine and applies it idempotently: PENDING moves to
// PAID or FAILED exactly once; a repeat with the same outcome is a
// no-op; terminal states are never overwritten. Goal attribution and
// the activity entry ride in the same transaction as the flip.
func (p *PaymentService) applyGatewayStatus(ctx context.Context, reference, gatewayStatus, source string) (domain.PaymentStatus, error) {
	var target domain.PaymentStatus
	switch gatewayStatus {
	case "success":
		target = domain.PaymentPaid
	case "failed":
		target = domain.PaymentFailed
	default:
		// Still in flight at the gateway: leave PENDING.
		pay, err := p.store.Payments().GetByReference(ctx, reference)
		if err == store.ErrRecordNotFound {
			return "", domain.ErrNotFound
		}
		if err != nil {
			return "", err
		}
		return pay.Status, nil
	}

	var final domain.PaymentStatus
	err := p.store.WithTx(ctx, func(tx *store.Store) error {
		flipped, err := tx.Payments().MarkStatusIfPending(ctx, reference, target)
		if err != nil {
			return err
		}

		pay, err := tx.Payments().GetByReference(ctx, reference)
		if err == store.ErrRecordNotFound {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		final = pay.Status

		if !flipped {
			// Already terminal; apply-twice equals apply-once.
			return nil
		}

		if target == domain.PaymentPaid {
			if err := tx.Goals().ApplyPaid(ctx, pay.Category, pay.Amount, time.Now().UTC()); err != nil {
				return err
			}
			if err := tx.Activity().Append(ctx, &domain.ActivityLog{
				UserID: pay.UserID,
				Type:   domain.ActivityParishioner,
				Action: "payment_completed",
				Detail: *pay.Reference,
			}); err != nil {
				return err
			}
		}
		metrics.PaymentStatusTotal.WithLabelValues(string(target), source).Inc()
		return nil
	})
	if err != nil {
		return "", err
	}

	if final == domain.PaymentPaid {
		p.registry.Publish(notify.Message{Kind: "activity", Body: "payment_completed"})
	}
	return final, nil
}

func (p *PaymentService) Get(ctx context.Context, userID domain.UserID, role domain.Role, id domain.PaymentID) (*domain.Payment, error) {
	pay, err := p.store.Payments().GetByID(ctx, id)
	if err == store.ErrRecordNotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if pay.UserID != userID && !role.AtLeast(domain.RoleAdmin) {
		return nil, domain.ErrNotOwner
	}
	return pay, nil
}

func (p *PaymentService) ListMine(ctx context.Context, userID domain.UserID) ([]domain.Payment, error) {
	return p.store.Payments().ListByUser(ctx, userID)
}

func (p *PaymentService) ListAll(ctx context.Context) ([]domain.Payment, error) {
	return p.store.Payments().List(ctx)
}

func (p *PaymentService) CreateGoal(ctx context.Context, r dto.CreateGoalRequest) (*domain.PaymentGoal, error) {
	if r.Title == "" || r.Category == "" {
		return nil, fmt.Errorf("%w: title and category are required", ErrInvalidRequest)
	}
	if r.TargetAmount <= 0 {
		return nil, fmt.Errorf("%w: targetAmount must be positive", ErrInvalidRequest)
	}
	now := time.Now().UTC()
	goal := &domain.PaymentGoal{
		ID:           uuid.New(),
		Title:        r.Title,
		Category:     r.Category,
		TargetAmount: r.TargetAmount,
		StartsAt:     r.StartsAt,
		EndsAt:       r.EndsAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := p.store.Goals().Create(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (p *PaymentService) ListGoals(ctx context.Context) ([]domain.PaymentGoal, error) {
	return p.store.Goals().List(ctx)
}

func (p *PaymentService) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	err := p.store.Goals().Delete(ctx, id)
	if err == store.ErrRecordNotFound {
		return domain.ErrNotFound
	}
	return err
}
