package cards

import (
	"tavola/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCardRoutes(router *gin.RouterGroup, controller *Controller) {
	cards := router.Group("/cards")
	cards.Use(middleware.JWTAuth())
	{
		cards.POST("", controller.AddCard)
		cards.GET("", controller.GetCards)
		cards.PUT("/:id/default", controller.SetDefault)
		cards.DELETE("/:id", controller.DeleteCard)
	}
}
