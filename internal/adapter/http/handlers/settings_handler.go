package handlers

import (
	"net/http"

	"taller_str/internal/domain/entities"
	"taller_str/internal/usecase"
	"taller_str/pkg"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	usecase usecase.ISettingsUseCase
}

func NewSettingsHandler(uc usecase.ISettingsUseCase) *SettingsHandler {
	return &SettingsHandler{usecase: uc}
}

// GetSettings is public: the portal and lookup pages read shop identity and
// contact info from here.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.usecase.Get(c.Request.Context())
	if err != nil {
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "Ocurrió un error interno", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) SaveSettings(c *gin.Context) {
	var payload entities.BusinessSettings
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Solicitud inválida", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	saved, err := h.usecase.Save(c.Request.Context(), payload)
	if err != nil {
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "Ocurrió un error interno", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, saved)
}
