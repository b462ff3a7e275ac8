package interfaces

import (
	"context"

	"taller_str/internal/domain/entities"
)

// IPartRepository abstracts persistence for the parts inventory.
type IPartRepository interface {
	List(ctx context.Context) ([]entities.Part, error)
	GetByID(ctx context.Context, id string) (entities.Part, error)
	Save(ctx context.Context, p entities.Part) (entities.Part, error)
	Delete(ctx context.Context, id string) (bool, error)
	// ReduceStock decrements stock by quantity, clamping at zero. Returns the
	// updated part, or a zero part when the id does not exist.
	ReduceStock(ctx context.Context, id string, quantity int) (entities.Part, error)
}

// IServiceRepository abstracts persistence for the repair-service catalog.
type IServiceRepository interface {
	List(ctx context.Context) ([]entities.RepairService, error)
	GetByID(ctx context.Context, id string) (entities.RepairService, error)
	Save(ctx context.Context, s entities.RepairService) (entities.RepairService, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ISettingsRepository abstracts the singleton business-settings record.
// Get creates the record with defaults on first read.
type ISettingsRepository interface {
	Get(ctx context.Context) (entities.BusinessSettings, error)
	Save(ctx context.Context, s entities.BusinessSettings) (entities.BusinessSettings, error)
}

// INotificationRepository abstracts the admin notification feed.
// Create inserts at the head so the feed stays newest-first.
type INotificationRepository interface {
	List(ctx context.Context) ([]entities.Notification, error)
	Create(ctx context.Context, n entities.Notification) (entities.Notification, error)
	MarkRead(ctx context.Context, id string) (bool, error)
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id string) (bool, error)
	UnreadCount(ctx context.Context) (int, error)
}

// ICredentialRepository stores the single shared admin password hash.
type ICredentialRepository interface {
	// Verify reports whether password matches the stored credential.
	Verify(ctx context.Context, password string) (bool, error)
	Update(ctx context.Context, newPassword string) error
}
