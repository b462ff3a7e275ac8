package entities

import "time"

// Part is an inventory item consumable by orders. Stock is decremented when a
// part is recorded as used on an order and never auto-incremented.
type Part struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Cost      float64   `json:"cost"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
