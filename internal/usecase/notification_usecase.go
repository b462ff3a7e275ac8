package usecase

import (
	"context"
	"errors"
	"strings"

	"taller_str/internal/domain/entities"
	"taller_str/internal/usecase/interfaces"
)

var ErrNotificationNotFound = errors.New("notification not found")

type INotificationUseCase interface {
	List(ctx context.Context) ([]entities.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id string) error
}

type NotificationUseCase struct {
	repo interfaces.INotificationRepository
}

var _ INotificationUseCase = (*NotificationUseCase)(nil)

func NewNotificationUseCase(repo interfaces.INotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

func (u *NotificationUseCase) List(ctx context.Context) ([]entities.Notification, error) {
	return u.repo.List(ctx)
}

func (u *NotificationUseCase) UnreadCount(ctx context.Context) (int, error) {
	return u.repo.UnreadCount(ctx)
}

func (u *NotificationUseCase) MarkRead(ctx context.Context, id string) error {
	marked, err := u.repo.MarkRead(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !marked {
		return ErrNotificationNotFound
	}
	return nil
}

func (u *NotificationUseCase) MarkAllRead(ctx context.Context) error {
	return u.repo.MarkAllRead(ctx)
}

func (u *NotificationUseCase) Delete(ctx context.Context, id string) error {
	deleted, err := u.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotificationNotFound
	}
	return nil
}
