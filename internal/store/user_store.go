package store

import (
	"context"
	"time"

	"parish/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserStore struct{ db *gorm.DB }

func (s *Store) Users() *UserStore { return &UserStore{db: s.DB} }

func (u *UserStore) Create(ctx context.Context, usr *domain.User) error {
	if usr.ID == uuid.Nil {
		usr.ID = uuid.New()
	}
	return u.db.WithContext(ctx).Create(usr).Error
}

func (u *UserStore) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	var user domain.User
	if err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := u.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if notFound(err) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *UserStore) UpdatePassword(ctx context.Context, userID domain.UserID, hash, salt, paramsJSON []byte, ver int) error {
	return u.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"password_hash": hash,
			"password_salt": salt,
			"params_json":   paramsJSON,
			"password_ver":  ver,
			"updated_at":    time.Now().UTC(),
		}).Error
}

func (u *UserStore) UpdateProfile(ctx context.Context, userID domain.UserID, name, phone string) error {
	return u.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{"name": name, "phone": phone, "updated_at": time.Now().UTC()}).Error
}

func (u *UserStore) List(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := u.db.WithContext(ctx).Order("created_at").Find(&out).Error
	return out, err
}

func (u *UserStore) Delete(ctx context.Context, userID domain.UserID) error {
	res := u.db.WithContext(ctx).Delete(&domain.User{}, "id = ?", userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (u *UserStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := u.db.WithContext(ctx).Model(&domain.User{}).Count(&n).Error
	return n, err
}

type PasswordResetStore struct{ db *gorm.DB }

func (s *Store) PasswordResets() *PasswordResetStore { return &PasswordResetStore{db: s.DB} }

// Upsert replaces any prior token for the user: one active token per
// user, the latest request wins.
func (p *PasswordResetStore) Upsert(ctx context.Context, pr *domain.PasswordReset) error {
	if pr.CreatedAt.IsZero() {
		pr.CreatedAt = time.Now().UTC()
	}
	return p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "expires_at", "created_at"}),
	}).Create(pr).Error
}

func (p *PasswordResetStore) GetByToken(ctx context.Context, token string) (*domain.PasswordReset, error) {
	var out domain.PasswordReset
	if err := p.db.WithContext(ctx).First(&out, "token = ?", token).Error; err != nil {
		if notFound(err) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (p *PasswordResetStore) Delete(ctx context.Context, userID domain.UserID) error {
	return p.db.WithContext(ctx).Delete(&domain.PasswordReset{}, "user_id = ?", userID).Error
}
