package response

import (
	"time"

	"taller_str/internal/domain/entities"
)

// OrderWithMessage wraps an order with an optional WhatsApp message the admin
// dispatches manually (budget sent, device ready).
type OrderWithMessage struct {
	Order           entities.ServiceOrder `json:"order"`
	WhatsappMessage string                `json:"whatsappMessage,omitempty"`
}

// PublicOrder is the projection served by the public lookup. No internal
// notes, no signatures, no cost breakdowns.
type PublicOrder struct {
	OrderNumber        string                `json:"orderNumber"`
	CustomerName       string                `json:"customerName"`
	DeviceType         string                `json:"deviceType"`
	DeviceBrand        string                `json:"deviceBrand"`
	DeviceModel        string                `json:"deviceModel"`
	Accessories        string                `json:"accessories"`
	ProblemDescription string                `json:"problemDescription"`
	Diagnosis          string                `json:"diagnosis"`
	EstimatedCost      float64               `json:"estimatedCost"`
	EstimatedDelivery  string                `json:"estimatedDelivery"`
	Status             entities.OrderStatus  `json:"status"`
	BudgetStatus       entities.BudgetStatus `json:"budgetStatus"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
}

func PublicFromOrder(o entities.ServiceOrder) PublicOrder {
	return PublicOrder{
		OrderNumber:        o.OrderNumber,
		CustomerName:       o.CustomerName,
		DeviceType:         o.DeviceType,
		DeviceBrand:        o.DeviceBrand,
		DeviceModel:        o.DeviceModel,
		Accessories:        o.Accessories,
		ProblemDescription: o.ProblemDescription,
		Diagnosis:          o.Diagnosis,
		EstimatedCost:      entities.ComputeCosts(o).Total,
		EstimatedDelivery:  o.EstimatedDelivery,
		Status:             o.Status,
		BudgetStatus:       o.BudgetStatus,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

// PortalHistoryEntry drops the admin's transition note.
type PortalHistoryEntry struct {
	From entities.OrderStatus `json:"from"`
	To   entities.OrderStatus `json:"to"`
	Date time.Time            `json:"date"`
}

type PortalService struct {
	Name      string  `json:"name"`
	BasePrice float64 `json:"basePrice"`
}

// PortalOrder is the token-gated customer projection: everything the client
// needs to follow the repair and decide on the budget, and nothing else —
// no internal notes, no signatures, no labor or parts cost breakdown.
type PortalOrder struct {
	ID                 string                `json:"id"`
	OrderNumber        string                `json:"orderNumber"`
	CustomerName       string                `json:"customerName"`
	DeviceType         string                `json:"deviceType"`
	DeviceBrand        string                `json:"deviceBrand"`
	DeviceModel        string                `json:"deviceModel"`
	Accessories        string                `json:"accessories"`
	ProblemDescription string                `json:"problemDescription"`
	Diagnosis          string                `json:"diagnosis"`
	DetailedDiagnosis  string                `json:"detailedDiagnosis"`
	EstimatedCost      float64               `json:"estimatedCost"`
	EstimatedDelivery  string                `json:"estimatedDelivery"`
	Status             entities.OrderStatus  `json:"status"`
	StatusHistory      []PortalHistoryEntry  `json:"statusHistory"`
	DevicePhotos       []string              `json:"devicePhotos"`
	SelectedServices   []PortalService       `json:"selectedServices"`
	BudgetStatus       entities.BudgetStatus `json:"budgetStatus"`
	BudgetSentAt       *time.Time            `json:"budgetSentAt,omitempty"`
	BudgetRespondedAt  *time.Time            `json:"budgetRespondedAt,omitempty"`
	BudgetNote         string                `json:"budgetNote,omitempty"`
	ClientNote         string                `json:"clientNote,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
}

func PortalFromOrder(o entities.ServiceOrder) PortalOrder {
	history := make([]PortalHistoryEntry, 0, len(o.StatusHistory))
	for _, h := range o.StatusHistory {
		history = append(history, PortalHistoryEntry{From: h.From, To: h.To, Date: h.Date})
	}
	services := make([]PortalService, 0, len(o.Services))
	for _, s := range o.Services {
		services = append(services, PortalService{Name: s.Name, BasePrice: s.BasePrice})
	}
	photos := o.DevicePhotos
	if photos == nil {
		photos = []string{}
	}
	return PortalOrder{
		ID:                 o.ID,
		OrderNumber:        o.OrderNumber,
		CustomerName:       o.CustomerName,
		DeviceType:         o.DeviceType,
		DeviceBrand:        o.DeviceBrand,
		DeviceModel:        o.DeviceModel,
		Accessories:        o.Accessories,
		ProblemDescription: o.ProblemDescription,
		Diagnosis:          o.Diagnosis,
		DetailedDiagnosis:  o.DetailedDiagnosis,
		EstimatedCost:      entities.ComputeCosts(o).Total,
		EstimatedDelivery:  o.EstimatedDelivery,
		Status:             o.Status,
		StatusHistory:      history,
		DevicePhotos:       photos,
		SelectedServices:   services,
		BudgetStatus:       o.BudgetStatus,
		BudgetSentAt:       o.BudgetSentAt,
		BudgetRespondedAt:  o.BudgetRespondedAt,
		BudgetNote:         o.BudgetNote,
		ClientNote:         o.ClientNote,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

// BudgetDecision is returned after a client responds to a budget.
type BudgetDecision struct {
	Success      bool                  `json:"success"`
	BudgetStatus entities.BudgetStatus `json:"budgetStatus"`
}

// Verified is returned once a portal token cookie has been issued.
type Verified struct {
	Success     bool   `json:"success"`
	OrderNumber string `json:"orderNumber"`
}
