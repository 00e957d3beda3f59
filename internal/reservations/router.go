package reservations

import (
	"tavola/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupReservationRoutes(router *gin.RouterGroup, controller *Controller) {
	// The availability widget is public
	router.GET("/reservations/availability", controller.CheckAvailability)

	reservations := router.Group("/reservations")
	reservations.Use(middleware.JWTAuth())
	{
		reservations.POST("", controller.CreateReservation)
		reservations.GET("", controller.GetMyReservations)
		reservations.GET("/:id", controller.GetReservation)
		reservations.DELETE("/:id", controller.CancelReservation)
	}

	admin := router.Group("/admin/reservations")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("", controller.GetAllReservations)
		admin.PUT("/:id", controller.UpdateReservation)
		admin.PUT("/:id/status", controller.UpdateStatus)
		admin.DELETE("/:id", controller.CancelReservation)
	}
}
