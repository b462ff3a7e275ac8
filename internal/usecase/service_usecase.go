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
	ErrServiceNotFound     = errors.New("service not found")
	ErrInvalidServiceName  = errors.New("invalid service name")
	ErrInvalidServicePrice = errors.New("invalid service price")
)

// ServiceDraft carries the catalog fields for creating or editing a repair
// service. The linked part is resolved to a snapshot at save time so later
// part edits do not change the service's margin basis.
type ServiceDraft struct {
	Name         string
	BasePrice    float64
	LinkedPartID string
}

type IServiceUseCase interface {
	List(ctx context.Context) ([]entities.RepairService, error)
	Create(ctx context.Context, draft ServiceDraft) (entities.RepairService, error)
	Update(ctx context.Context, id string, draft ServiceDraft) (entities.RepairService, error)
	Delete(ctx context.Context, id string) error
}

type ServiceUseCase struct {
	repo     interfaces.IServiceRepository
	partRepo interfaces.IPartRepository
}

var _ IServiceUseCase = (*ServiceUseCase)(nil)

func NewServiceUseCase(repo interfaces.IServiceRepository, partRepo interfaces.IPartRepository) *ServiceUseCase {
	return &ServiceUseCase{repo: repo, partRepo: partRepo}
}

func (u *ServiceUseCase) List(ctx context.Context) ([]entities.RepairService, error) {
	return u.repo.List(ctx)
}

func (u *ServiceUseCase) Create(ctx context.Context, draft ServiceDraft) (entities.RepairService, error) {
	s, err := u.buildFromDraft(ctx, entities.RepairService{ID: uuid.NewString()}, draft)
	if err != nil {
		return entities.RepairService{}, err
	}
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	return u.repo.Save(ctx, s)
}

func (u *ServiceUseCase) Update(ctx context.Context, id string, draft ServiceDraft) (entities.RepairService, error) {
	existing, err := u.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return entities.RepairService{}, err
	}
	if existing.ID == "" {
		return entities.RepairService{}, ErrServiceNotFound
	}

	s, err := u.buildFromDraft(ctx, existing, draft)
	if err != nil {
		return entities.RepairService{}, err
	}
	s.UpdatedAt = time.Now().UTC()
	return u.repo.Save(ctx, s)
}

func (u *ServiceUseCase) Delete(ctx context.Context, id string) error {
	deleted, err := u.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrServiceNotFound
	}
	return nil
}

func (u *ServiceUseCase) buildFromDraft(ctx context.Context, base entities.RepairService, draft ServiceDraft) (entities.RepairService, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return entities.RepairService{}, ErrInvalidServiceName
	}
	if draft.BasePrice <= 0 {
		return entities.RepairService{}, ErrInvalidServicePrice
	}

	base.Name = name
	base.BasePrice = draft.BasePrice
	base.LinkedPartID = ""
	base.LinkedPartName = ""
	base.LinkedPartCost = 0

	if partID := strings.TrimSpace(draft.LinkedPartID); partID != "" {
		part, err := u.partRepo.GetByID(ctx, partID)
		if err != nil {
			return entities.RepairService{}, err
		}
		if part.ID == "" {
			return entities.RepairService{}, ErrPartNotFound
		}
		base.LinkedPartID = part.ID
		base.LinkedPartName = part.Name
		base.LinkedPartCost = part.Cost
	}

	return base, nil
}
