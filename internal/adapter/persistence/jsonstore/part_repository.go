package jsonstore

import (
	"context"
	"time"

	"taller_str/internal/domain/entities"
	"taller_str/internal/usecase/interfaces"
)

const partsFile = "parts.json"

type PartJSONRepository struct {
	col *collection[entities.Part]
	now func() time.Time
}

var _ interfaces.IPartRepository = (*PartJSONRepository)(nil)

func NewPartJSONRepository(dataDir string) *PartJSONRepository {
	return &PartJSONRepository{
		col: newCollection[entities.Part](dataDir, partsFile),
		now: time.Now,
	}
}

func (r *PartJSONRepository) List(ctx context.Context) ([]entities.Part, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()
	return r.col.load()
}

func (r *PartJSONRepository) GetByID(ctx context.Context, id string) (entities.Part, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	parts, err := r.col.load()
	if err != nil {
		return entities.Part{}, err
	}
	for _, p := range parts {
		if p.ID == id {
			return p, nil
		}
	}
	return entities.Part{}, nil
}

func (r *PartJSONRepository) Save(ctx context.Context, p entities.Part) (entities.Part, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	parts, err := r.col.load()
	if err != nil {
		return entities.Part{}, err
	}
	replaced := false
	for i := range parts {
		if parts[i].ID == p.ID {
			parts[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		parts = append(parts, p)
	}
	if err := r.col.store(parts); err != nil {
		return entities.Part{}, err
	}
	return p, nil
}

func (r *PartJSONRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	parts, err := r.col.load()
	if err != nil {
		return false, err
	}
	kept := parts[:0]
	for _, p := range parts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(parts) {
		return false, nil
	}
	if err := r.col.store(kept); err != nil {
		return false, err
	}
	return true, nil
}

func (r *PartJSONRepository) ReduceStock(ctx context.Context, id string, quantity int) (entities.Part, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	parts, err := r.col.load()
	if err != nil {
		return entities.Part{}, err
	}
	for i := range parts {
		if parts[i].ID != id {
			continue
		}
		parts[i].Stock -= quantity
		if parts[i].Stock < 0 {
			parts[i].Stock = 0
		}
		parts[i].UpdatedAt = r.now().UTC()
		if err := r.col.store(parts); err != nil {
			return entities.Part{}, err
		}
		return parts[i], nil
	}
	return entities.Part{}, nil
}
