package orders

import (
	"tavola/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupOrderRoutes(router *gin.RouterGroup, controller *Controller) {
	orders := router.Group("/orders")
	orders.Use(middleware.JWTAuth())
	{
		orders.POST("", controller.CreateOrder)
		orders.GET("", controller.GetOrders)
		orders.GET("/:id", controller.GetOrder)
	}

	admin := router.Group("/admin/orders")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("", controller.GetAllOrders)
		admin.PUT("/:id/status", controller.UpdateStatus)
	}
}
