package jsonstore

import (
	"context"

	"taller_str/internal/domain/entities"
	"taller_str/internal/usecase/interfaces"
)

const servicesFile = "services.json"

type ServiceJSONRepository struct {
	col *collection[entities.RepairService]
}

var _ interfaces.IServiceRepository = (*ServiceJSONRepository)(nil)

func NewServiceJSONRepository(dataDir string) *ServiceJSONRepository {
	return &ServiceJSONRepository{col: newCollection[entities.RepairService](dataDir, servicesFile)}
}

func (r *ServiceJSONRepository) List(ctx context.Context) ([]entities.RepairService, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()
	return r.col.load()
}

func (r *ServiceJSONRepository) GetByID(ctx context.Context, id string) (entities.RepairService, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	services, err := r.col.load()
	if err != nil {
		return entities.RepairService{}, err
	}
	for _, s := range services {
		if s.ID == id {
			return s, nil
		}
	}
	return entities.RepairService{}, nil
}

func (r *ServiceJSONRepository) Save(ctx context.Context, s entities.RepairService) (entities.RepairService, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	services, err := r.col.load()
	if err != nil {
		return entities.RepairService{}, err
	}
	replaced := false
	for i := range services {
		if services[i].ID == s.ID {
			services[i] = s
			replaced = true
			break
		}
	}
	if !replaced {
		services = append(services, s)
	}
	if err := r.col.store(services); err != nil {
		return entities.RepairService{}, err
	}
	return s, nil
}

func (r *ServiceJSONRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	services, err := r.col.load()
	if err != nil {
		return false, err
	}
	kept := services[:0]
	for _, s := range services {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(services) {
		return false, nil
	}
	if err := r.col.store(kept); err != nil {
		return false, err
	}
	return true, nil
}
