package request

type CreatePartRequest struct {
	Name  string  `json:"name" binding:"required"`
	Cost  float64 `json:"cost"`
	Stock int     `json:"stock"`
}

type UpdatePartRequest struct {
	Name  *string  `json:"name"`
	Cost  *float64 `json:"cost"`
	Stock *int     `json:"stock"`
}

type ServiceRequest struct {
	Name         string  `json:"name" binding:"required"`
	BasePrice    float64 `json:"basePrice" binding:"required"`
	LinkedPartID string  `json:"linkedPartId"`
}

// NotificationActionRequest carries feed-level actions; the only supported
// action is mark_all_read.
type NotificationActionRequest struct {
	Action string `json:"action" binding:"required"`
}
