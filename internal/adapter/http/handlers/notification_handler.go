package handlers

import (
	"errors"
	"net/http"

	request "taller_str/internal/adapter/http/dto/request"
	"taller_str/internal/usecase"
	"taller_str/pkg"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	usecase usecase.INotificationUseCase
}

func NewNotificationHandler(uc usecase.INotificationUseCase) *NotificationHandler {
	return &NotificationHandler{usecase: uc}
}

func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.usecase.List(c.Request.Context())
	if err != nil {
		appErr := mapNotificationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	unread, err := h.usecase.UnreadCount(c.Request.Context())
	if err != nil {
		appErr := mapNotificationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "unreadCount": unread})
}

// Act handles feed-level actions; mark_all_read is the only one.
func (h *NotificationHandler) Act(c *gin.Context) {
	var payload request.NotificationActionRequest
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Action != "mark_all_read" {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Acción no válida", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if err := h.usecase.MarkAllRead(c.Request.Context()); err != nil {
		appErr := mapNotificationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.usecase.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		appErr := mapNotificationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		appErr := mapNotificationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func mapNotificationError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrNotificationNotFound):
		return pkg.NewDomainErrorSimple("NOTIFICATION_NOT_FOUND", "Notificación no encontrada", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Ocurrió un error interno", err, http.StatusInternalServerError)
	}
}
