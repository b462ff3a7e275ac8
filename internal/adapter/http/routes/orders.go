package routes

import (
	"taller_str/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathOrders = "/orders"

func addOrderRoutes(
	rg *gin.RouterGroup,
	orderHandler *handlers.OrderHandler,
	portalHandler *handlers.PortalHandler,
	requireAdmin gin.HandlerFunc,
	requireClient gin.HandlerFunc,
) {
	orders := rg.Group(PathOrders)
	{
		// Public lookup and portal token issuance.
		orders.GET("/search", portalHandler.Search)
		orders.POST("/verify", portalHandler.Verify)

		// Client portal (token-gated).
		orders.GET("/portal/:orderNumber", requireClient, portalHandler.PortalOrder)
		orders.POST("/:id/budget", requireClient, portalHandler.RespondBudget)

		// Admin surface.
		orders.GET("", requireAdmin, orderHandler.ListOrders)
		orders.POST("", requireAdmin, orderHandler.CreateOrder)
		orders.GET("/:id", requireAdmin, orderHandler.GetOrder)
		orders.PUT("/:id", requireAdmin, orderHandler.UpdateOrder)
		orders.DELETE("/:id", requireAdmin, orderHandler.DeleteOrder)
		orders.POST("/:id/budget/send", requireAdmin, orderHandler.SendBudget)
	}
}
