package handlers

import (
	"fmt"
	"net/http"
	"time"

	"taller_str/internal/usecase"
	"taller_str/pkg"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	usecase usecase.IExportUseCase
}

func NewExportHandler(uc usecase.IExportUseCase) *ExportHandler {
	return &ExportHandler{usecase: uc}
}

// Export streams a CSV of all orders or a full JSON backup, as an attachment.
func (h *ExportHandler) Export(c *gin.Context) {
	date := time.Now().Format("2006-01-02")

	if c.DefaultQuery("format", "csv") == "json" {
		data, err := h.usecase.ExportJSON(c.Request.Context())
		if err != nil {
			appErr := pkg.NewDomainError("INTERNAL_ERROR", "Ocurrió un error interno", err, http.StatusInternalServerError)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="backup_%s.json"`, date))
		c.Data(http.StatusOK, "application/json", data)
		return
	}

	data, err := h.usecase.ExportCSV(c.Request.Context())
	if err != nil {
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "Ocurrió un error interno", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="ordenes_%s.csv"`, date))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
