package handlers

import (
	"errors"
	"log"
	"net/http"

	request "taller_str/internal/adapter/http/dto/request"
	response "taller_str/internal/adapter/http/dto/response"
	"taller_str/internal/usecase"
	"taller_str/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidOrderPayload = pkg.NewDomainErrorSimple("INVALID_ORDER_INPUT", "Datos de orden inválidos", http.StatusBadRequest)

// OrderHandler handles the admin-facing order endpoints: intake, edits,
// deletion and the budget send action.

type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.usecase.List(c.Request.Context())
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.Create(c.Request.Context(), payload.ToDraft())
	if err != nil {
		log.Printf("[orders][handler] create failed: %v", err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var payload request.UpdateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, waMessage, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToPatch())
	if err != nil {
		log.Printf("[orders][handler] update failed id=%s: %v", c.Param("id"), err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.OrderWithMessage{Order: order, WhatsappMessage: waMessage})
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Orden eliminada"})
}

// SendBudget puts the order's budget into the pending state and returns the
// WhatsApp message the admin forwards to the customer.
func (h *OrderHandler) SendBudget(c *gin.Context) {
	var payload request.SendBudgetRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, message, err := h.usecase.SendBudget(c.Request.Context(), c.Param("id"), payload.ServiceIDs, payload.BudgetNote)
	if err != nil {
		log.Printf("[orders][handler] send-budget failed id=%s: %v", c.Param("id"), err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.OrderWithMessage{Order: order, WhatsappMessage: message})
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID), errors.Is(err, usecase.ErrInvalidOrderNumber),
		errors.Is(err, usecase.ErrInvalidStatus), errors.Is(err, usecase.ErrInvalidBudgetAction):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Solicitud inválida", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrBudgetGateBlocked):
		return pkg.NewDomainErrorSimple("BUDGET_NOT_APPROVED", "El presupuesto debe estar aprobado para avanzar el estado", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrZeroBudget):
		return pkg.NewDomainErrorSimple("BUDGET_EMPTY", "El presupuesto debe tener un costo mayor a cero", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrNoPendingBudget):
		return pkg.NewDomainErrorSimple("NO_PENDING_BUDGET", "No hay presupuesto pendiente de aprobación", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrSignatureRequired):
		return pkg.NewDomainErrorSimple("SIGNATURE_REQUIRED", "Se requiere la firma para aprobar", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrServiceNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_NOT_FOUND", "Servicio no encontrado", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Orden no encontrada", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Ocurrió un error interno", err, http.StatusInternalServerError)
	}
}
