package menu

import (
	"tavola/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupMenuRoutes(router *gin.RouterGroup, controller *Controller) {
	// Public browsing
	public := router.Group("/menu")
	{
		public.GET("", controller.GetMenu)
		public.GET("/categories", controller.GetCategories)
		public.GET("/search", controller.SearchItems)
		public.GET("/:id", controller.GetItem)
	}

	// Favorites require a signed-in customer
	favorites := router.Group("/menu")
	favorites.Use(middleware.JWTAuth())
	{
		favorites.GET("/favorites", controller.GetFavorites)
		favorites.POST("/:id/favorite", controller.ToggleFavorite)
	}

	// Admin menu management
	admin := router.Group("/admin/menu")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateItem)
		admin.PUT("/:id", controller.UpdateItem)
		admin.PATCH("/:id/availability", controller.SetAvailability)
		admin.DELETE("/:id", controller.DeleteItem)
	}
}
