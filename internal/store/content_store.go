package store

import (
	"context"
	"time"

	"parish/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContentStore struct{ db *gorm.DB }

func (s *Store) Content() *ContentStore { return &ContentStore{db: s.DB} }

func (c *ContentStore) GetChurchInfo(ctx context.Context) (*domain.ChurchInfo, error) {
	var info domain.ChurchInfo
	if err := c.db.WithContext(ctx).First(&info).Error; err != nil {
		if notFound(err) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &info, nil
}

// UpsertChurchInfo keeps church_info a single-row table.
func (c *ContentStore) UpsertChurchInfo(ctx context.Context, info *domain.ChurchInfo) error {
	info.UpdatedAt = time.Now().UTC()
	existing, err := c.GetChurchInfo(ctx)
	if err == nil {
		info.ID = existing.ID
		return c.db.WithContext(ctx).Model(&domain.ChurchInfo{}).
			Where("id = ?", existing.ID).
			Updates(map[string]any{
				"name": info.Name, "address": info.Address, "phone": info.Phone,
				"email": info.Email, "about": info.About, "updated_at": info.UpdatedAt,
			}).Error
	}
	if err != ErrRecordNotFound {
		return err
	}
	if info.ID == uuid.Nil {
		info.ID = uuid.New()
	}
	return c.db.WithContext(ctx).Create(info).Error
}

func (c *ContentStore) ListServices(ctx context.Context) ([]domain.Service, error) {
	var out []domain.Service
	err := c.db.WithContext(ctx).Order("day_of_week, start_time").Find(&out).Error
	return out, err
}

func (c *ContentStore) CreateService(ctx context.Context, svc *domain.Service) error {
	if svc.ID == uuid.Nil {
		svc.ID = uuid.New()
	}
	return c.db.WithContext(ctx).Create(svc).Error
}

func (c *ContentStore) DeleteService(ctx context.Context, id uuid.UUID) error {
	res := c.db.WithContext(ctx).Delete(&domain.Service{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
