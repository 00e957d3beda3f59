package cart

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

func (c *Controller) GetCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	cartResp, err := c.service.GetCart(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch cart", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Cart fetched successfully", cartResp, nil)
}

func (c *Controller) AddItem(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req AddItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	cartResp, err := c.service.AddItem(ctx.Request.Context(), userID, &req)
	if err != nil {
		switch err {
		case menu.ErrMenuItemNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Menu item not found", nil, nil)
		case ErrItemUnavailable:
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Menu item is not available", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to add item to cart", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Item added to cart", cartResp, nil)
}

func (c *Controller) UpdateItem(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	itemID, err := uuid.Parse(ctx.Param("itemId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid cart item ID", nil, nil)
		return
	}

	var req UpdateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	cartResp, err := c.service.UpdateItem(ctx.Request.Context(), userID, itemID, req.Quantity)
	if err != nil {
		switch err {
		case ErrCartNotFound, ErrCartItemNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Cart item not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update cart item", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Cart updated successfully", cartResp, nil)
}

func (c *Controller) RemoveItem(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	itemID, err := uuid.Parse(ctx.Param("itemId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid cart item ID", nil, nil)
		return
	}

	cartResp, err := c.service.RemoveItem(ctx.Request.Context(), userID, itemID)
	if err != nil {
		switch err {
		case ErrCartNotFound, ErrCartItemNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Cart item not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to remove cart item", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Item removed from cart", cartResp, nil)
}

func (c *Controller) Clear(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	if err := c.service.Clear(ctx.Request.Context(), userID); err != nil {
		switch err {
		case ErrCartNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Cart not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to clear cart", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Cart cleared successfully", nil, nil)
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
