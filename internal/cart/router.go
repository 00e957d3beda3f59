package cart

import (
	"tavola/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCartRoutes(router *gin.RouterGroup, controller *Controller) {
	cart := router.Group("/cart")
	cart.Use(middleware.JWTAuth())
	{
		cart.GET("", controller.GetCart)
		cart.POST("/items", controller.AddItem)
		cart.PUT("/items/:itemId", controller.UpdateItem)
		cart.DELETE("/items/:itemId", controller.RemoveItem)
		cart.DELETE("", controller.Clear)
	}
}
