package jsonstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taller_str/internal/domain/entities"
	"taller_str/internal/usecase/interfaces"
)

const ordersFile = "orders.json"

// OrderJSONRepository persists service orders in orders.json.
//
// Order numbers are generated by counting existing orders with the current
// ORD-YYYYMM prefix under the collection mutex, so sequential creation within
// one process never yields duplicates.

type OrderJSONRepository struct {
	col *collection[entities.ServiceOrder]
	now func() time.Time
}

var _ interfaces.IOrderRepository = (*OrderJSONRepository)(nil)

func NewOrderJSONRepository(dataDir string) *OrderJSONRepository {
	return &OrderJSONRepository{
		col: newCollection[entities.ServiceOrder](dataDir, ordersFile),
		now: time.Now,
	}
}

func (r *OrderJSONRepository) List(ctx context.Context) ([]entities.ServiceOrder, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()
	return r.col.load()
}

func (r *OrderJSONRepository) GetByID(ctx context.Context, id string) (entities.ServiceOrder, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	orders, err := r.col.load()
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	for _, o := range orders {
		if o.ID == id {
			return o, nil
		}
	}
	return entities.ServiceOrder{}, nil
}

func (r *OrderJSONRepository) GetByNumber(ctx context.Context, orderNumber string) (entities.ServiceOrder, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	orders, err := r.col.load()
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	for _, o := range orders {
		if strings.EqualFold(o.OrderNumber, orderNumber) {
			return o, nil
		}
	}
	return entities.ServiceOrder{}, nil
}

func (r *OrderJSONRepository) SearchByPhone(ctx context.Context, phoneDigits string) ([]entities.ServiceOrder, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	orders, err := r.col.load()
	if err != nil {
		return nil, err
	}
	matched := []entities.ServiceOrder{}
	for _, o := range orders {
		if strings.Contains(digitsOnly(o.CustomerPhone), phoneDigits) {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

func (r *OrderJSONRepository) Save(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	orders, err := r.col.load()
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	replaced := false
	for i := range orders {
		if orders[i].ID == o.ID {
			orders[i] = o
			replaced = true
			break
		}
	}
	if !replaced {
		orders = append(orders, o)
	}
	if err := r.col.store(orders); err != nil {
		return entities.ServiceOrder{}, err
	}
	return o, nil
}

func (r *OrderJSONRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	orders, err := r.col.load()
	if err != nil {
		return false, err
	}
	kept := orders[:0]
	for _, o := range orders {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	if len(kept) == len(orders) {
		return false, nil
	}
	if err := r.col.store(kept); err != nil {
		return false, err
	}
	return true, nil
}

func (r *OrderJSONRepository) NextOrderNumber(ctx context.Context) (string, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	orders, err := r.col.load()
	if err != nil {
		return "", err
	}
	now := r.now()
	prefix := fmt.Sprintf("ORD-%04d%02d", now.Year(), int(now.Month()))
	count := 0
	for _, o := range orders {
		if strings.HasPrefix(o.OrderNumber, prefix) {
			count++
		}
	}
	return fmt.Sprintf("%s-%04d", prefix, count+1), nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
