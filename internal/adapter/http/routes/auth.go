package routes

import (
	"taller_str/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathAuth   = "/auth"
	PathExport = "/export"
)

func addAuthRoutes(
	rg *gin.RouterGroup,
	authHandler *handlers.AuthHandler,
	exportHandler *handlers.ExportHandler,
	requireAdmin gin.HandlerFunc,
) {
	auth := rg.Group(PathAuth)
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/change-password", requireAdmin, authHandler.ChangePassword)
	}

	rg.GET(PathExport, requireAdmin, exportHandler.Export)
}
