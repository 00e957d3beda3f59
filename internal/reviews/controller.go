package reviews

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"tavola/internal/menu"
	"tavola/internal/shared/utils/response"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func (c *Controller) CreateReview(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	review, err := c.service.CreateReview(ctx.Request.Context(), userID, &req)
	if err != nil {
		switch err {
		case menu.ErrMenuItemNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Menu item not found", nil, nil)
		case ErrDuplicateReview:
			response.RespondJSON(ctx, "error", http.StatusConflict, "You have already reviewed this item", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create review", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Review created successfully", review, nil)
}

func (c *Controller) GetItemReviews(ctx *gin.Context) {
	menuItemID, err := uuid.Parse(ctx.Param("itemId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid menu item ID", nil, nil)
		return
	}

	reviews, err := c.service.GetItemReviews(ctx.Request.Context(), menuItemID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch reviews", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reviews fetched successfully", reviews, nil)
}

func (c *Controller) GetMyReviews(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	reviews, err := c.service.GetUserReviews(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch reviews", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reviews fetched successfully", reviews, nil)
}

func (c *Controller) DeleteReview(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	reviewID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid review ID", nil, nil)
		return
	}

	if err := c.service.DeleteReview(ctx.Request.Context(), userID, reviewID, isAdmin(ctx)); err != nil {
		switch err {
		case ErrReviewNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Review not found", nil, nil)
		case ErrForbidden:
			response.RespondJSON(ctx, "error", http.StatusForbidden, "You do not have access to this review", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete review", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Review deleted successfully", nil, nil)
}

func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func isAdmin(ctx *gin.Context) bool {
	role, exists := ctx.Get("user_role")
	return exists && role == "ADMIN"
}
