package entities

import "time"

// NotificationType classifies server-generated events shown in the admin
// notification feed.

type NotificationType string

const (
	NotificationBudgetApproved NotificationType = "budget_approved"
	NotificationBudgetRejected NotificationType = "budget_rejected"
	NotificationOrderCreated   NotificationType = "order_created"
	NotificationOrderCompleted NotificationType = "order_completed"
)

// Notification is an internal event record consumed by the admin UI. New
// notifications are inserted at the head of the collection (newest first).
type Notification struct {
	ID          string           `json:"id"`
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	OrderID     string           `json:"orderId"`
	OrderNumber string           `json:"orderNumber"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"createdAt"`
}
