package entities

import "time"

// OrderStatus represents the five-stage repair lifecycle of a service order.
//
// Domain notes:
//   - Orders always start as "recibido".
//   - Transitions are explicit admin actions; there are no automatic moves.
//   - The store accepts any status value; the forward gate against an
//     unapproved budget lives in the order use case (CanEnterWithBudget).

type OrderStatus string

const (
	OrderStatusRecibido       OrderStatus = "recibido"
	OrderStatusDiagnosticando OrderStatus = "diagnosticando"
	OrderStatusReparando      OrderStatus = "reparando"
	OrderStatusListo          OrderStatus = "listo"
	OrderStatusEntregado      OrderStatus = "entregado"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusRecibido, OrderStatusDiagnosticando, OrderStatusReparando,
		OrderStatusListo, OrderStatusEntregado:
		return true
	}
	return false
}

// BudgetStatus is the approval sub-flow layered on the order:
// none -> pending -> approved|rejected, with rejected -> pending on re-send.

type BudgetStatus string

const (
	BudgetStatusNone     BudgetStatus = "none"
	BudgetStatusPending  BudgetStatus = "pending"
	BudgetStatusApproved BudgetStatus = "approved"
	BudgetStatusRejected BudgetStatus = "rejected"
)

// CanEnterWithBudget reports whether an order whose budget is in state b may
// move into status s. Work statuses (reparando, listo, entregado) require the
// budget to be approved, or that no budget was ever sent.
func (b BudgetStatus) CanEnterWithBudget(s OrderStatus) bool {
	switch s {
	case OrderStatusReparando, OrderStatusListo, OrderStatusEntregado:
		return b == BudgetStatusNone || b == BudgetStatusApproved
	}
	return true
}

// StatusHistoryEntry records one accepted status transition. History is
// append-only; entries are never edited or pruned.
type StatusHistoryEntry struct {
	From OrderStatus `json:"from"`
	To   OrderStatus `json:"to"`
	Date time.Time   `json:"date"`
	Note string      `json:"note,omitempty"`
}

// InternalNote is admin-only free text; it is never exposed through the
// public or portal projections.
type InternalNote struct {
	ID   string    `json:"id"`
	Text string    `json:"text"`
	Date time.Time `json:"date"`
}

// UsedPart is a denormalized snapshot of an inventory part consumed by an
// order. Later edits to the Part do not change past orders.
type UsedPart struct {
	PartID   string  `json:"partId"`
	PartName string  `json:"partName"`
	Quantity int     `json:"quantity"`
	UnitCost float64 `json:"unitCost"`
}

// SelectedService is a denormalized snapshot of a catalog service attached to
// an order at budget time.
type SelectedService struct {
	ServiceID      string  `json:"serviceId"`
	Name           string  `json:"name"`
	BasePrice      float64 `json:"basePrice"`
	LinkedPartCost float64 `json:"linkedPartCost,omitempty"`
}

// ServiceOrder is one repair ticket for one customer device.
//
// Identity:
//   - ID is an opaque uuid, never shown to customers.
//   - OrderNumber is human-facing (ORD-YYYYMM-NNNN), sequential per calendar
//     month, never reassigned.
type ServiceOrder struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`

	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	CustomerEmail string `json:"customerEmail"`

	DeviceType   string `json:"deviceType"`
	DeviceBrand  string `json:"deviceBrand"`
	DeviceModel  string `json:"deviceModel"`
	SerialNumber string `json:"serialNumber"`
	Accessories  string `json:"accessories"`

	ProblemDescription string  `json:"problemDescription"`
	Diagnosis          string  `json:"diagnosis"`
	DetailedDiagnosis  string  `json:"detailedDiagnosis"`
	EstimatedCost      float64 `json:"estimatedCost"`
	PartsCost          float64 `json:"partsCost"`
	LaborCost          float64 `json:"laborCost"`
	EstimatedDelivery  string  `json:"estimatedDelivery"`

	Signature    string            `json:"signature"`
	DevicePhotos []string          `json:"devicePhotos"`
	UsedParts    []UsedPart        `json:"usedParts"`
	Services     []SelectedService `json:"selectedServices"`

	Status        OrderStatus          `json:"status"`
	StatusHistory []StatusHistoryEntry `json:"statusHistory"`

	BudgetStatus      BudgetStatus `json:"budgetStatus"`
	BudgetSentAt      *time.Time   `json:"budgetSentAt,omitempty"`
	BudgetRespondedAt *time.Time   `json:"budgetRespondedAt,omitempty"`
	BudgetNote        string       `json:"budgetNote,omitempty"`
	ClientNote        string       `json:"clientNote,omitempty"`
	ApprovalSignature string       `json:"approvalSignature,omitempty"`

	InternalNotes []InternalNote `json:"internalNotes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
