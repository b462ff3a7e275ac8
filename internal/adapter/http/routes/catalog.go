package routes

import (
	"taller_str/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathParts         = "/parts"
	PathServices      = "/services"
	PathSettings      = "/settings"
	PathNotifications = "/notifications"
)

func addCatalogRoutes(
	rg *gin.RouterGroup,
	catalogHandler *handlers.CatalogHandler,
	settingsHandler *handlers.SettingsHandler,
	notifHandler *handlers.NotificationHandler,
	requireAdmin gin.HandlerFunc,
) {
	parts := rg.Group(PathParts)
	{
		parts.GET("", requireAdmin, catalogHandler.ListParts)
		parts.POST("", requireAdmin, catalogHandler.CreatePart)
		parts.PUT("/:id", requireAdmin, catalogHandler.UpdatePart)
		parts.DELETE("/:id", requireAdmin, catalogHandler.DeletePart)
	}

	services := rg.Group(PathServices)
	{
		services.GET("", requireAdmin, catalogHandler.ListServices)
		services.POST("", requireAdmin, catalogHandler.CreateService)
		services.PUT("/:id", requireAdmin, catalogHandler.UpdateService)
		services.DELETE("/:id", requireAdmin, catalogHandler.DeleteService)
	}

	settings := rg.Group(PathSettings)
	{
		// Reads are public: the portal shows shop identity and contact info.
		settings.GET("", settingsHandler.GetSettings)
		settings.PUT("", requireAdmin, settingsHandler.SaveSettings)
	}

	notifications := rg.Group(PathNotifications)
	{
		notifications.GET("", requireAdmin, notifHandler.List)
		notifications.POST("", requireAdmin, notifHandler.Act)
		notifications.PUT("/:id", requireAdmin, notifHandler.MarkRead)
		notifications.DELETE("/:id", requireAdmin, notifHandler.Delete)
	}
}
