package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"taller_str/internal/domain/entities"
	"taller_str/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrPartNotFound    = errors.New("part not found")
	ErrInvalidPartName = errors.New("invalid part name")
)

// PartWithStockFlag decorates a part with the low-stock indicator derived
// from the configured threshold.
type PartWithStockFlag struct {
	entities.Part
	LowStock bool `json:"lowStock"`
}

type IPartUseCase interface {
	List(ctx context.Context) ([]PartWithStockFlag, error)
	Create(ctx context.Context, name string, cost float64, stock int) (entities.Part, error)
	Update(ctx context.Context, id string, name *string, cost *float64, stock *int) (entities.Part, error)
	Delete(ctx context.Context, id string) error
}

type PartUseCase struct {
	repo         interfaces.IPartRepository
	settingsRepo interfaces.ISettingsRepository
}

var _ IPartUseCase = (*PartUseCase)(nil)

func NewPartUseCase(repo interfaces.IPartRepository, settingsRepo interfaces.ISettingsRepository) *PartUseCase {
	return &PartUseCase{repo: repo, settingsRepo: settingsRepo}
}

func (u *PartUseCase) List(ctx context.Context) ([]PartWithStockFlag, error) {
	parts, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	threshold := entities.DefaultSettings().LowStockThreshold
	if u.settingsRepo != nil {
		if settings, err := u.settingsRepo.Get(ctx); err == nil {
			threshold = settings.LowStockThreshold
		}
	}

	out := make([]PartWithStockFlag, 0, len(parts))
	for _, p := range parts {
		out = append(out, PartWithStockFlag{Part: p, LowStock: p.Stock <= threshold})
	}
	return out, nil
}

func (u *PartUseCase) Create(ctx context.Context, name string, cost float64, stock int) (entities.Part, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entities.Part{}, ErrInvalidPartName
	}
	if stock < 0 {
		stock = 0
	}

	now := time.Now().UTC()
	p := entities.Part{
		ID:        uuid.NewString(),
		Name:      name,
		Cost:      cost,
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return u.repo.Save(ctx, p)
}

func (u *PartUseCase) Update(ctx context.Context, id string, name *string, cost *float64, stock *int) (entities.Part, error) {
	p, err := u.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return entities.Part{}, err
	}
	if p.ID == "" {
		return entities.Part{}, ErrPartNotFound
	}

	if name != nil && strings.TrimSpace(*name) != "" {
		p.Name = strings.TrimSpace(*name)
	}
	if cost != nil {
		p.Cost = *cost
	}
	if stock != nil && *stock >= 0 {
		p.Stock = *stock
	}
	p.UpdatedAt = time.Now().UTC()

	return u.repo.Save(ctx, p)
}

func (u *PartUseCase) Delete(ctx context.Context, id string) error {
	deleted, err := u.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPartNotFound
	}
	return nil
}
