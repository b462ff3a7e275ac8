package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strings"

	request "taller_str/internal/adapter/http/dto/request"
	response "taller_str/internal/adapter/http/dto/response"
	"taller_str/internal/adapter/http/middleware"
	"taller_str/internal/infrastructure/token"
	"taller_str/internal/usecase"
	"taller_str/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPortalPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Solicitud inválida", http.StatusBadRequest)
	errForeignOrder         = pkg.NewDomainErrorSimple("FORBIDDEN", "No autorizado para esta orden", http.StatusForbidden)
	errSearchRequired       = pkg.NewDomainErrorSimple("SEARCH_REQUIRED", "Búsqueda requerida", http.StatusBadRequest)
)

// PortalHandler serves the customer-facing surface: public lookup, portal
// token issuance, the portal projection and the budget response.

type PortalHandler struct {
	usecase usecase.IOrderUseCase
	signer  *token.ClientSigner
}

func NewPortalHandler(uc usecase.IOrderUseCase, signer *token.ClientSigner) *PortalHandler {
	return &PortalHandler{usecase: uc, signer: signer}
}

// Search is the public status lookup by order number or phone. Both modes
// return the public-safe projection only.
func (h *PortalHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(errSearchRequired.HTTPStatus, errSearchRequired.ToHTTPError())
		return
	}

	if c.DefaultQuery("type", "order") == "phone" {
		orders, err := h.usecase.SearchByPhone(c.Request.Context(), query)
		if err != nil {
			appErr := mapOrderError(err)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		if len(orders) == 0 {
			appErr := pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "No se encontraron órdenes con ese teléfono", http.StatusNotFound)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		results := make([]response.PublicOrder, 0, len(orders))
		for _, o := range orders {
			results = append(results, response.PublicFromOrder(o))
		}
		c.JSON(http.StatusOK, results)
		return
	}

	order, err := h.usecase.GetByNumber(c.Request.Context(), query)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.PublicFromOrder(order))
}

// Verify matches order number + phone fragment and sets the 24h portal token
// cookie on success.
func (h *PortalHandler) Verify(c *gin.Context) {
	var payload request.VerifyRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPortalPayload.HTTPStatus, errInvalidPortalPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.VerifyContact(c.Request.Context(), payload.OrderNumber, payload.Phone)
	if err != nil {
		log.Printf("[portal][handler] verify failed order=%s: %v", payload.OrderNumber, err)
		appErr := mapPortalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	tok := h.signer.Generate(order.OrderNumber, order.CustomerPhone)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.ClientCookie, tok, int(token.ClientTokenTTL.Seconds()), "/", "", cookieSecure(), true)

	c.JSON(http.StatusOK, response.Verified{Success: true, OrderNumber: order.OrderNumber})
}

// PortalOrder returns the customer-safe projection for the order bound to
// the caller's token.
func (h *PortalHandler) PortalOrder(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, pkg.NewDomainErrorSimple("UNAUTHORIZED", "No autorizado", http.StatusUnauthorized).ToHTTPError())
		return
	}

	orderNumber := c.Param("orderNumber")
	if !strings.EqualFold(claims.OrderNumber, orderNumber) {
		c.JSON(errForeignOrder.HTTPStatus, errForeignOrder.ToHTTPError())
		return
	}

	order, err := h.usecase.GetByNumber(c.Request.Context(), orderNumber)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.PortalFromOrder(order))
}

// RespondBudget records the client's approve/reject decision for the order
// bound to the caller's token.
func (h *PortalHandler) RespondBudget(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, pkg.NewDomainErrorSimple("UNAUTHORIZED", "No autorizado", http.StatusUnauthorized).ToHTTPError())
		return
	}

	var payload request.BudgetActionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPortalPayload.HTTPStatus, errInvalidPortalPayload.ToHTTPError())
		return
	}

	status, err := h.usecase.RespondBudget(c.Request.Context(), c.Param("id"), claims.OrderNumber, usecase.BudgetResponse{
		Action:            payload.Action,
		ClientNote:        payload.ClientNote,
		ApprovalSignature: payload.ApprovalSignature,
	})
	if err != nil {
		log.Printf("[portal][handler] budget-response failed id=%s: %v", c.Param("id"), err)
		appErr := mapPortalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.BudgetDecision{Success: true, BudgetStatus: status})
}

func mapPortalError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrPhoneTooShort):
		return pkg.NewDomainErrorSimple("PHONE_TOO_SHORT", "Ingresa al menos 4 dígitos del teléfono", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPhoneMismatch):
		return pkg.NewDomainErrorSimple("PHONE_MISMATCH", "El teléfono no coincide con la orden", http.StatusForbidden)
	default:
		return mapOrderError(err)
	}
}

func cookieSecure() bool {
	return os.Getenv("APP_ENV") == "production"
}
