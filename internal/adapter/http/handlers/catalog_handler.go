package handlers

import (
	"errors"
	"net/http"

	request "taller_str/internal/adapter/http/dto/request"
	"taller_str/internal/usecase"
	"taller_str/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidCatalogPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Solicitud inválida", http.StatusBadRequest)

// CatalogHandler covers the parts inventory and the repair-service catalog.

type CatalogHandler struct {
	parts    usecase.IPartUseCase
	services usecase.IServiceUseCase
}

func NewCatalogHandler(parts usecase.IPartUseCase, services usecase.IServiceUseCase) *CatalogHandler {
	return &CatalogHandler{parts: parts, services: services}
}

func (h *CatalogHandler) ListParts(c *gin.Context) {
	parts, err := h.parts.List(c.Request.Context())
	if err != nil {
		appErr := mapCatalogError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, parts)
}

func (h *CatalogHandler) CreatePart(c *gin.Context) {
	var payload request.CreatePartRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCatalogPayload.HTTPStatus, errInvalidCatalogPayload.ToHTTPError())
		return
	}

	part, err := h.parts.Create(c.Request.Context(), payload.Name, payload.Cost, payload.Stock)
	if err != nil {
		appErr := mapCatalogError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, part)
}

func (h *CatalogHandler) UpdatePart(c *gin.Context) {
	var payload request.UpdatePartRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCatalogPayload.HTTPStatus, errInvalidCatalogPayload.ToHTTPError())
		return
	}

	part, err := h.parts.Update(c.Request.Context(), c.Param("id"), payload.Name, payload.Cost, payload.Stock)
	if err != nil {
		appErr := mapCatalogError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, part)
}

func (h *CatalogHandler) DeletePart(c *gin.Context) {
	if err := h.parts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		appErr := mapCatalogError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pieza eliminada"})
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.services.List(c.Request.Context())
	if err != nil {
		appErr := mapCatalogError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, services)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var payload request.ServiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCatalogPayload.HTTPStatus, errInvalidCatalogPayload.ToHTTPError())
		return
	}

	svc, err := h.services.Create(c.Request.Context(), usecase.ServiceDraft{
		Name:         payload.Name,
		BasePrice:    payload.BasePrice,
		LinkedPartID: payload.LinkedPartID,
	})
	if err != nil {
		appErr := mapCatalogError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	var payload request.ServiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCatalogPayload.HTTPStatus, errInvalidCatalogPayload.ToHTTPError())
		return
	}

	svc, err := h.services.Update(c.Request.Context(), c.Param("id"), usecase.ServiceDraft{
		Name:         payload.Name,
		BasePrice:    payload.BasePrice,
		LinkedPartID: payload.LinkedPartID,
	})
	if err != nil {
		appErr := mapCatalogError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	if err := h.services.Delete(c.Request.Context(), c.Param("id")); err != nil {
		appErr := mapCatalogError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Servicio eliminado"})
}

func mapCatalogError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPartName), errors.Is(err, usecase.ErrInvalidServiceName),
		errors.Is(err, usecase.ErrInvalidServicePrice):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Solicitud inválida", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPartNotFound):
		return pkg.NewDomainErrorSimple("PART_NOT_FOUND", "Pieza no encontrada", http.StatusNotFound)
	case errors.Is(err, usecase.ErrServiceNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_NOT_FOUND", "Servicio no encontrado", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Ocurrió un error interno", err, http.StatusInternalServerError)
	}
}
