package service_test

import (
	"context"
	"testing"
	"time"

	"parish/internal/domain"
	"parish/internal/dto"
	"parish/internal/service"
	"parish/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*service.AuthService, *store.Store) {
	t.Helper()
	st := setupStore(t)
	return service.NewAuthService(st, service.NewHasher()), st
}

func TestValidPassword(t *testing.T) {
	cases := map[string]bool{
		"Passw0rd":  true,
		"short1A":   false, // 7 chars
		"alllower1": false, // no uppercase
		"ALLUPPER1": false, // no lowercase
		"NoDigits!": false,
		"":          false,
	}
	for pw, want := range cases {
		assert.Equal(t, want, service.ValidPassword(pw), "password %q", pw)
	}
}

func TestRegister_PolicyAndDuplicates(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{
		Name: "Ada", Email: "ada@parish.test", Password: "weak",
	})
	assert.ErrorIs(t, err, domain.ErrWeakPassword)

	u, err := svc.Register(ctx, dto.RegisterRequest{
		Name: "Ada", Email: "Ada@Parish.Test", Password: "Passw0rd!",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@parish.test", u.Email) // normalized
	assert.Equal(t, domain.RoleParishioner, u.Role)

	// Case-insensitive duplicate.
	_, err = svc.Register(ctx, dto.RegisterRequest{
		Name: "Ada Again", Email: "ADA@parish.test", Password: "Passw0rd!",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{
		Name: "Ada", Email: "ada@parish.test", Password: "Passw0rd!",
	})
	require.NoError(t, err)

	u, err := svc.Login(ctx, dto.LoginRequest{Email: "ada@parish.test", Password: "Passw0rd!"})
	require.NoError(t, err)
	assert.Equal(t, "ada@parish.test", u.Email)

	// Wrong password and unknown email look identical to the caller.
	_, err = svc.Login(ctx, dto.LoginRequest{Email: "ada@parish.test", Password: "Wrong0rd!"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@parish.test", Password: "Passw0rd!"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestPasswordReset_Flow(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, dto.RegisterRequest{
		Name: "Ada", Email: "ada@parish.test", Password: "Passw0rd!",
	})
	require.NoError(t, err)

	// Unknown email: silent success, no token.
	tok, err := svc.RequestPasswordReset(ctx, "nobody@parish.test")
	require.NoError(t, err)
	assert.Empty(t, tok)

	tok, err = svc.RequestPasswordReset(ctx, "ada@parish.test")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	// A second request replaces the first token.
	tok2, err := svc.RequestPasswordReset(ctx, "ada@parish.test")
	require.NoError(t, err)
	require.NotEqual(t, tok, tok2)
	assert.ErrorIs(t, svc.ResetPassword(ctx, tok, "NewPassw0rd"), domain.ErrInvalidResetToken)

	// Weak replacement password is rejected before the token is spent.
	assert.ErrorIs(t, svc.ResetPassword(ctx, tok2, "weak"), domain.ErrWeakPassword)

	require.NoError(t, svc.ResetPassword(ctx, tok2, "NewPassw0rd"))

	// Single use.
	assert.ErrorIs(t, svc.ResetPassword(ctx, tok2, "OtherPass0"), domain.ErrInvalidResetToken)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: u.Email, Password: "Passw0rd!"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Login(ctx, dto.LoginRequest{Email: u.Email, Password: "NewPassw0rd"})
	assert.NoError(t, err)
}

func TestPasswordReset_Expired(t *testing.T) {
	svc, st := newAuthService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, dto.RegisterRequest{
		Name: "Ada", Email: "ada@parish.test", Password: "Passw0rd!",
	})
	require.NoError(t, err)

	tok, err := svc.RequestPasswordReset(ctx, u.Email)
	require.NoError(t, err)

	// Backdate the token past its lifetime.
	pr, err := st.PasswordResets().GetByToken(ctx, tok)
	require.NoError(t, err)
	pr.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	require.NoError(t, st.PasswordResets().Upsert(ctx, pr))

	// Expired reads the same as nonexistent.
	assert.ErrorIs(t, svc.ResetPassword(ctx, tok, "NewPassw0rd"), domain.ErrInvalidResetToken)
	assert.ErrorIs(t, svc.ResetPassword(ctx, "deadbeef", "NewPassw0rd"), domain.ErrInvalidResetToken)
}

func TestCreateAdminAndDeleteUser(t *testing.T) {
	svc, st := newAuthService(t)
	ctx := context.Background()

	admin, err := svc.CreateAdmin(ctx, dto.CreateAdminRequest{
		Name: "Fr. John", Email: "frjohn@parish.test", Password: "Shepherd1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)

	member := seedUser(t, st, "member@parish.test", domain.RoleParishioner)
	require.NoError(t, svc.DeleteUser(ctx, member.ID))

	_, err = svc.GetUser(ctx, member.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteUser(ctx, member.ID), domain.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svc, st := newAuthService(t)
	ctx := context.Background()

	u := seedUser(t, st, "member@parish.test", domain.RoleParishioner)

	assert.ErrorIs(t, svc.UpdateProfile(ctx, u.ID, dto.UpdateProfileRequest{}), service.ErrInvalidRequest)

	require.NoError(t, svc.UpdateProfile(ctx, u.ID, dto.UpdateProfileRequest{Name: "Renamed", Phone: "0800"}))
	got, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "0800", got.Phone)
}
