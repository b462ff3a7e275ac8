package interfaces

import (
	"context"

	"taller_str/internal/domain/entities"
)

// IOrderRepository abstracts persistence for service orders.
//
// The system must be able to:
//   - list and fetch orders by id or human-facing order number
//   - search orders by a digits-only phone fragment (substring match)
//   - upsert whole records (insert on new id, replace in place otherwise)
//   - generate the next sequential ORD-YYYYMM-NNNN number

type IOrderRepository interface {
	List(ctx context.Context) ([]entities.ServiceOrder, error)
	GetByID(ctx context.Context, id string) (entities.ServiceOrder, error)
	GetByNumber(ctx context.Context, orderNumber string) (entities.ServiceOrder, error)
	SearchByPhone(ctx context.Context, phoneDigits string) ([]entities.ServiceOrder, error)
	Save(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error)
	Delete(ctx context.Context, id string) (bool, error)
	NextOrderNumber(ctx context.Context) (string, error)
}
