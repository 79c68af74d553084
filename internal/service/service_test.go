package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"parish/internal/domain"
	"parish/internal/notify"
	"parish/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T, dsn string) *store.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.PasswordReset{},
		&domain.Mass{},
		&domain.MassIntention{},
		&domain.Thanksgiving{},
		&domain.Event{},
		&domain.RSVP{},
		&domain.Payment{},
		&domain.PaymentGoal{},
		&domain.ActivityLog{},
		&domain.SystemNotification{},
		&domain.ChurchInfo{},
		&domain.Service{},
	))
	return store.New(db)
}

// setupStore opens a per-test in-memory database.
func setupStore(t *testing.T) *store.Store {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return openTestDB(t, "file:"+name+"?mode=memory&cache=shared")
}

func newRegistry(t *testing.T) *notify.Registry {
	t.Helper()
	r := notify.NewRegistry()
	t.Cleanup(r.Close)
	return r
}

func seedUser(t *testing.T, st *store.Store, email string, role domain.Role) *domain.User {
	t.Helper()
	now := time.Now().UTC()
	u := &domain.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: []byte("x"),
		PasswordSalt: []byte("x"),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Users().Create(context.Background(), u))
	return u
}
