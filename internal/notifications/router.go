package notifications

import (
	"tavola/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupNotificationRoutes(router *gin.RouterGroup, controller *Controller) {
	notifications := router.Group("/notifications")
	notifications.Use(middleware.JWTAuth())
	{
		notifications.GET("", controller.GetNotifications)
		notifications.GET("/unread", controller.GetUnread)
		notifications.GET("/unread/count", controller.CountUnread)
		notifications.PUT("/:id/read", controller.MarkRead)
		notifications.PUT("/read-all", controller.MarkAllRead)
	}
}
