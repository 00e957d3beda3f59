package reviews

import (
	"tavola/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupReviewRoutes(router *gin.RouterGroup, controller *Controller) {
	// Anyone can read an item's reviews
	router.GET("/reviews/item/:itemId", controller.GetItemReviews)

	reviews := router.Group("/reviews")
	reviews.Use(middleware.JWTAuth())
	{
		reviews.POST("", controller.CreateReview)
		reviews.GET("/mine", controller.GetMyReviews)
		reviews.DELETE("/:id", controller.DeleteReview)
	}
}
