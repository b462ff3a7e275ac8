package entities

import "time"

// RepairService is a catalog item with a fixed customer price, optionally
// linked to an inventory part whose cost is used to estimate margin. The link
// is a snapshot (id/name/cost copied at link time), independent of any order
// until selected.
type RepairService struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	BasePrice      float64   `json:"basePrice"`
	LinkedPartID   string    `json:"linkedPartId,omitempty"`
	LinkedPartName string    `json:"linkedPartName,omitempty"`
	LinkedPartCost float64   `json:"linkedPartCost,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
