package jsonstore

import (
	"context"

	"taller_str/internal/domain/entities"
	"taller_str/internal/usecase/interfaces"
)

const settingsFile = "settings.json"

// SettingsJSONRepository stores the singleton settings record in
// settings.json, materializing the defaults on first read.

type SettingsJSONRepository struct {
	rec *singleton[entities.BusinessSettings]
}

var _ interfaces.ISettingsRepository = (*SettingsJSONRepository)(nil)

func NewSettingsJSONRepository(dataDir string) *SettingsJSONRepository {
	return &SettingsJSONRepository{rec: newSingleton[entities.BusinessSettings](dataDir, settingsFile)}
}

func (r *SettingsJSONRepository) Get(ctx context.Context) (entities.BusinessSettings, error) {
	r.rec.mu.Lock()
	defer r.rec.mu.Unlock()

	s, found, err := r.rec.load()
	if err != nil {
		return entities.BusinessSettings{}, err
	}
	if !found {
		s = entities.DefaultSettings()
		if err := r.rec.store(s); err != nil {
			return entities.BusinessSettings{}, err
		}
	}
	return s, nil
}

func (r *SettingsJSONRepository) Save(ctx context.Context, s entities.BusinessSettings) (entities.BusinessSettings, error) {
	r.rec.mu.Lock()
	defer r.rec.mu.Unlock()

	if err := r.rec.store(s); err != nil {
		return entities.BusinessSettings{}, err
	}
	return s, nil
}
