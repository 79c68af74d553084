package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"parish/internal/domain"
	"parish/internal/dto"
	"parish/internal/store"

	"github.com/google/uuid"
)

// ResetTokenTTL is the absolute lifetime of a password reset token.
const ResetTokenTTL = time.Hour

type AuthService struct {
	store  *store.Store
	hasher *Hasher
}

func NewAuthService(st *store.Store, hasher *Hasher) *AuthService {
	return &AuthService{store: st, hasher: hasher}
}

func (a *AuthService) Register(ctx context.Context, r dto.RegisterRequest) (*domain.User, error) {
	return a.createUser(ctx, r.Name, r.Email, r.Phone, r.Password, domain.RoleParishioner)
}

// CreateAdmin provisions an ADMIN account. Same password policy as
// self-registration.
func (a *AuthService) CreateAdmin(ctx context.Context, r dto.CreateAdminRequest) (*domain.User, error) {
	return a.createUser(ctx, r.Name, r.Email, r.Phone, r.Password, domain.RoleAdmin)
}

func (a *AuthService) createUser(ctx context.Context, name, email, phone, password string, role domain.Role) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrInvalidRequest)
	}
	if !ValidPassword(password) {
		return nil, domain.ErrWeakPassword
	}

	if _, err := a.store.Users().GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if err != store.ErrRecordNotFound {
		return nil, err
	}

	hash, salt, paramsJSON, ver, err := a.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		PasswordSalt: salt,
		ParamsJSON:   paramsJSON,
		PasswordVer:  ver,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.store.Users().Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (a *AuthService) Login(ctx context.Context, r dto.LoginRequest) (*domain.User, error) {
	if r.Email == "" || r.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	user, err := a.store.Users().GetByEmail(ctx, strings.ToLower(strings.TrimSpace(r.Email)))
	if err != nil {
		return nil, domain.ErrInvalidCredentials // don't leak which field failed
	}
	if !a.hasher.Verify(r.Password, user) {
		return nil, domain.ErrInvalidCredentials
	}

	_ = a.store.Activity().Append(ctx, &domain.ActivityLog{
		UserID: user.ID,
		Type:   activityTypeFor(user.Role),
		Action: "login",
		Detail: user.Email,
	})
	return user, nil
}

// RequestPasswordReset never discloses whether the email exists. On a
// match it stores a fresh token, replacing any prior one for the user,
// and returns the token for delivery.
func (a *AuthService) RequestPasswordReset(ctx context.Context, email string) (token string, err error) {
	user, err := a.store.Users().GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err == store.ErrRecordNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token = hex.EncodeToString(buf)

	err = a.store.PasswordResets().Upsert(ctx, &domain.PasswordReset{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(ResetTokenTTL),
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword accepts only a live token. Not-found and expired are
// indistinguishable to the caller. The token is single-use.
func (a *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if !ValidPassword(newPassword) {
		return domain.ErrWeakPassword
	}

	return a.store.WithTx(ctx, func(tx *store.Store) error {
		pr, err := tx.PasswordResets().GetByToken(ctx, token)
		if err == store.ErrRecordNotFound {
			return domain.ErrInvalidResetToken
		}
		if err != nil {
			return err
		}
		if time.Now().UTC().After(pr.ExpiresAt) {
			return domain.ErrInvalidResetToken
		}

		hash, salt, paramsJSON, ver, err := a.hasher.Hash(newPassword)
		if err != nil {
			return err
		}
		if err := tx.Users().UpdatePassword(ctx, pr.UserID, hash, salt, paramsJSON, ver); err != nil {
			return err
		}
		return tx.PasswordResets().Delete(ctx, pr.UserID)
	})
}

func (a *AuthService) GetUser(ctx context.Context, id domain.UserID) (*domain.User, error) {
	u, err := a.store.Users().GetByID(ctx, id)
	if err == store.ErrRecordNotFound {
		return nil, domain.ErrNotFound
	}
	return u, err
}

func (a *AuthService) UpdateProfile(ctx context.Context, userID domain.UserID, r dto.UpdateProfileRequest) error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}
	return a.store.Users().UpdateProfile(ctx, userID, r.Name, r.Phone)
}

func (a *AuthService) ListMembers(ctx context.Context) ([]domain.User, error) {
	return a.store.Users().List(ctx)
}

func (a *AuthService) DeleteUser(ctx context.Context, id domain.UserID) error {
	err := a.store.Users().Delete(ctx, id)
	if err == store.ErrRecordNotFound {
		return domain.ErrNotFound
	}
	return err
}

func activityTypeFor(role domain.Role) domain.ActivityType {
	if role.AtLeast(domain.RoleAdmin) {
		return domain.ActivityAdmin
	}
	return domain.ActivityParishioner
}
