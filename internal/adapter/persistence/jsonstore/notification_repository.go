package jsonstore

import (
	"context"

	"taller_str/internal/domain/entities"
	"taller_str/internal/usecase/interfaces"
)

const notificationsFile = "notifications.json"

type NotificationJSONRepository struct {
	col *collection[entities.Notification]
}

var _ interfaces.INotificationRepository = (*NotificationJSONRepository)(nil)

func NewNotificationJSONRepository(dataDir string) *NotificationJSONRepository {
	return &NotificationJSONRepository{col: newCollection[entities.Notification](dataDir, notificationsFile)}
}

func (r *NotificationJSONRepository) List(ctx context.Context) ([]entities.Notification, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()
	return r.col.load()
}

func (r *NotificationJSONRepository) Create(ctx context.Context, n entities.Notification) (entities.Notification, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	items, err := r.col.load()
	if err != nil {
		return entities.Notification{}, err
	}
	// Newest first.
	items = append([]entities.Notification{n}, items...)
	if err := r.col.store(items); err != nil {
		return entities.Notification{}, err
	}
	return n, nil
}

func (r *NotificationJSONRepository) MarkRead(ctx context.Context, id string) (bool, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	items, err := r.col.load()
	if err != nil {
		return false, err
	}
	for i := range items {
		if items[i].ID == id {
			items[i].Read = true
			if err := r.col.store(items); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (r *NotificationJSONRepository) MarkAllRead(ctx context.Context) error {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	items, err := r.col.load()
	if err != nil {
		return err
	}
	for i := range items {
		items[i].Read = true
	}
	return r.col.store(items)
}

func (r *NotificationJSONRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	items, err := r.col.load()
	if err != nil {
		return false, err
	}
	kept := items[:0]
	for _, n := range items {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}
	if err := r.col.store(kept); err != nil {
		return false, err
	}
	return true, nil
}

func (r *NotificationJSONRepository) UnreadCount(ctx context.Context) (int, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	items, err := r.col.load()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range items {
		if !n.Read {
			count++
		}
	}
	return count, nil
}
