package service

import (
	"context"
	"fmt"

	"parish/internal/domain"
	"parish/internal/dto"
	"parish/internal/store"

	"github.com/google/uuid"
)

type ContentService struct {
	store *store.Store
}

func NewContentService(st *store.Store) *ContentService {
	return &ContentService{store: st}
}

func (c *ContentService) ChurchInfo(ctx context.Context) (*domain.ChurchInfo, error) {
	info, err := c.store.Content().GetChurchInfo(ctx)
	if err == store.ErrRecordNotFound {
		return nil, domain.ErrNotFound
	}
	return info, err
}

func (c *ContentService) SetChurchInfo(ctx context.Context, r dto.ChurchInfoRequest) error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}
	return c.store.Content().UpsertChurchInfo(ctx, &domain.ChurchInfo{
		Name:    r.Name,
		Address: r.Address,
		Phone:   r.Phone,
		Email:   r.Email,
		About:   r.About,
	})
}

func (c *ContentService) ListServices(ctx context.Context) ([]domain.Service, error) {
	return c.store.Content().ListServices(ctx)
}

func (c *ContentService) CreateService(ctx context.Context, r dto.ServiceRequest) (*domain.Service, error) {
	if r.Title == "" || r.StartTime == "" {
		return nil, fmt.Errorf("%w: title and startTime are required", ErrInvalidRequest)
	}
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return nil, fmt.Errorf("%w: dayOfWeek must be 0-6", ErrInvalidRequest)
	}
	svc := &domain.Service{
		ID:        uuid.New(),
		Title:     r.Title,
		DayOfWeek: r.DayOfWeek,
		StartTime: r.StartTime,
	}
	if err := c.store.Content().CreateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (c *ContentService) DeleteService(ctx context.Context, id uuid.UUID) error {
	err := c.store.Content().DeleteService(ctx, id)
	if err == store.ErrRecordNotFound {
		return domain.ErrNotFound
	}
	return err
}
