package request

import (
	"taller_str/internal/domain/entities"
	"taller_str/internal/usecase"
)

type UsedPartRequest struct {
	PartID   string  `json:"partId" binding:"required"`
	PartName string  `json:"partName"`
	Quantity int     `json:"quantity" binding:"required"`
	UnitCost float64 `json:"unitCost"`
}

type InternalNoteRequest struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Date string `json:"date"`
}

// CreateOrderRequest is the intake form payload.
type CreateOrderRequest struct {
	CustomerName       string            `json:"customerName" binding:"required"`
	CustomerPhone      string            `json:"customerPhone" binding:"required"`
	CustomerEmail      string            `json:"customerEmail"`
	DeviceType         string            `json:"deviceType"`
	DeviceBrand        string            `json:"deviceBrand"`
	DeviceModel        string            `json:"deviceModel"`
	SerialNumber       string            `json:"serialNumber"`
	Accessories        string            `json:"accessories"`
	ProblemDescription string            `json:"problemDescription"`
	Diagnosis          string            `json:"diagnosis"`
	EstimatedCost      float64           `json:"estimatedCost"`
	PartsCost          float64           `json:"partsCost"`
	LaborCost          float64           `json:"laborCost"`
	EstimatedDelivery  string            `json:"estimatedDelivery"`
	Signature          string            `json:"signature"`
	DevicePhotos       []string          `json:"devicePhotos"`
	UsedParts          []UsedPartRequest `json:"usedParts"`
}

func (r CreateOrderRequest) ToDraft() usecase.OrderDraft {
	return usecase.OrderDraft{
		CustomerName:       r.CustomerName,
		CustomerPhone:      r.CustomerPhone,
		CustomerEmail:      r.CustomerEmail,
		DeviceType:         r.DeviceType,
		DeviceBrand:        r.DeviceBrand,
		DeviceModel:        r.DeviceModel,
		SerialNumber:       r.SerialNumber,
		Accessories:        r.Accessories,
		ProblemDescription: r.ProblemDescription,
		Diagnosis:          r.Diagnosis,
		EstimatedCost:      r.EstimatedCost,
		PartsCost:          r.PartsCost,
		LaborCost:          r.LaborCost,
		EstimatedDelivery:  r.EstimatedDelivery,
		Signature:          r.Signature,
		DevicePhotos:       r.DevicePhotos,
		UsedParts:          toUsedParts(r.UsedParts),
	}
}

// UpdateOrderRequest is the admin partial edit; absent fields stay untouched.
type UpdateOrderRequest struct {
	CustomerName       *string                 `json:"customerName"`
	CustomerPhone      *string                 `json:"customerPhone"`
	CustomerEmail      *string                 `json:"customerEmail"`
	DeviceType         *string                 `json:"deviceType"`
	DeviceBrand        *string                 `json:"deviceBrand"`
	DeviceModel        *string                 `json:"deviceModel"`
	SerialNumber       *string                 `json:"serialNumber"`
	Accessories        *string                 `json:"accessories"`
	ProblemDescription *string                 `json:"problemDescription"`
	Diagnosis          *string                 `json:"diagnosis"`
	DetailedDiagnosis  *string                 `json:"detailedDiagnosis"`
	EstimatedCost      *float64                `json:"estimatedCost"`
	PartsCost          *float64                `json:"partsCost"`
	LaborCost          *float64                `json:"laborCost"`
	EstimatedDelivery  *string                 `json:"estimatedDelivery"`
	Signature          *string                 `json:"signature"`
	DevicePhotos       []string                `json:"devicePhotos"`
	UsedParts          []UsedPartRequest       `json:"usedParts"`
	InternalNotes      []entities.InternalNote `json:"internalNotes"`
	Status             *string                 `json:"status"`
	StatusChangeNote   string                  `json:"statusChangeNote"`
}

func (r UpdateOrderRequest) ToPatch() usecase.OrderPatch {
	patch := usecase.OrderPatch{
		CustomerName:       r.CustomerName,
		CustomerPhone:      r.CustomerPhone,
		CustomerEmail:      r.CustomerEmail,
		DeviceType:         r.DeviceType,
		DeviceBrand:        r.DeviceBrand,
		DeviceModel:        r.DeviceModel,
		SerialNumber:       r.SerialNumber,
		Accessories:        r.Accessories,
		ProblemDescription: r.ProblemDescription,
		Diagnosis:          r.Diagnosis,
		DetailedDiagnosis:  r.DetailedDiagnosis,
		EstimatedCost:      r.EstimatedCost,
		PartsCost:          r.PartsCost,
		LaborCost:          r.LaborCost,
		EstimatedDelivery:  r.EstimatedDelivery,
		Signature:          r.Signature,
		DevicePhotos:       r.DevicePhotos,
		InternalNotes:      r.InternalNotes,
		StatusChangeNote:   r.StatusChangeNote,
	}
	if r.UsedParts != nil {
		patch.UsedParts = toUsedParts(r.UsedParts)
	}
	if r.Status != nil {
		status := entities.OrderStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

// SendBudgetRequest starts a budget cycle. ServiceIDs nil keeps the order's
// current service selection; an explicit empty list clears it (manual
// estimate mode).
type SendBudgetRequest struct {
	ServiceIDs []string `json:"serviceIds"`
	BudgetNote string   `json:"budgetNote"`
}

// BudgetActionRequest is the client portal's decision payload.
type BudgetActionRequest struct {
	Action            string `json:"action" binding:"required"`
	ClientNote        string `json:"clientNote"`
	ApprovalSignature string `json:"approvalSignature"`
}

// VerifyRequest asks for a portal token.
type VerifyRequest struct {
	OrderNumber string `json:"orderNumber" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
}

func toUsedParts(in []UsedPartRequest) []entities.UsedPart {
	out := make([]entities.UsedPart, 0, len(in))
	for _, p := range in {
		out = append(out, entities.UsedPart{
			PartID:   p.PartID,
			PartName: p.PartName,
			Quantity: p.Quantity,
			UnitCost: p.UnitCost,
		})
	}
	return out
}
