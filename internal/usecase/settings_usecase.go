package usecase

import (
	"context"

	"taller_str/internal/domain/entities"
	"taller_str/internal/usecase/interfaces"
)

type ISettingsUseCase interface {
	Get(ctx context.Context) (entities.BusinessSettings, error)
	Save(ctx context.Context, s entities.BusinessSettings) (entities.BusinessSettings, error)
}

type SettingsUseCase struct {
	repo interfaces.ISettingsRepository
}

var _ ISettingsUseCase = (*SettingsUseCase)(nil)

func NewSettingsUseCase(repo interfaces.ISettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

func (u *SettingsUseCase) Get(ctx context.Context) (entities.BusinessSettings, error) {
	return u.repo.Get(ctx)
}

// Save replaces the whole settings record, backfilling a sane low-stock
// threshold when the payload omits it.
func (u *SettingsUseCase) Save(ctx context.Context, s entities.BusinessSettings) (entities.BusinessSettings, error) {
	if s.LowStockThreshold <= 0 {
		s.LowStockThreshold = entities.DefaultSettings().LowStockThreshold
	}
	return u.repo.Save(ctx, s)
}
