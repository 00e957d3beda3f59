package users

import (
	"tavola/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(router *gin.RouterGroup, controller *Controller) {
	// Authenticated user profile routes
	user := router.Group("/user")
	user.Use(middleware.JWTAuth())
	{
		user.GET("/profile", controller.GetProfile)
		user.PUT("/profile", controller.UpdateProfile)
		user.PUT("/notifications/preferences", controller.UpdatePreferences)
	}

	// Admin user management
	admin := router.Group("/admin/users")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("", controller.GetAllUsers)
		admin.PUT("/:id/role", controller.UpdateUserRole)
		admin.DELETE("/:id", controller.DeactivateUser)
	}
}
