package menu

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

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

func (c *Controller) GetMenu(ctx *gin.Context) {
	if category := ctx.Query("category"); category != "" {
		items, err := c.service.GetMenuByCategory(ctx.Request.Context(), category)
		if err != nil {
			switch err {
			case ErrInvalidCategory:
				response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid category", nil, nil)
			default:
				response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch menu", nil, nil)
			}
			return
		}
		response.RespondJSON(ctx, "success", http.StatusOK, "Menu fetched successfully", items, nil)
		return
	}

	items, err := c.service.GetMenu(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch menu", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Menu fetched successfully", items, nil)
}

func (c *Controller) GetCategories(ctx *gin.Context) {
	categories := c.service.GetCategories(ctx.Request.Context())
	response.RespondJSON(ctx, "success", http.StatusOK, "Categories fetched successfully", categories, nil)
}

func (c *Controller) GetItem(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid menu item ID", nil, nil)
		return
	}

	item, err := c.service.GetItem(ctx.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrMenuItemNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Menu item not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch menu item", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Menu item fetched successfully", item, nil)
}

func (c *Controller) SearchItems(ctx *gin.Context) {
	query := ctx.Query("q")
	if query == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Search query is required", nil, nil)
		return
	}

	items, err := c.service.SearchItems(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to search menu", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Search results fetched successfully", items, nil)
}

func (c *Controller) CreateItem(ctx *gin.Context) {
	var req MenuItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	item, err := c.service.CreateItem(ctx.Request.Context(), &req)
	if err != nil {
		switch err {
		case ErrInvalidCategory:
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid category", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create menu item", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Menu item created successfully", item, nil)
}

func (c *Controller) UpdateItem(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid menu item ID", nil, nil)
		return
	}

	var req MenuItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	item, err := c.service.UpdateItem(ctx.Request.Context(), id, &req)
	if err != nil {
		switch err {
		case ErrMenuItemNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Menu item not found", nil, nil)
		case ErrInvalidCategory:
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid category", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update menu item", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Menu item updated successfully", item, nil)
}

func (c *Controller) SetAvailability(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid menu item ID", nil, nil)
		return
	}

	var req struct {
		Available *bool `json:"available" validate:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if req.Available == nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Field 'available' is required", nil, nil)
		return
	}

	item, err := c.service.SetAvailability(ctx.Request.Context(), id, *req.Available)
	if err != nil {
		switch err {
		case ErrMenuItemNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Menu item not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update availability", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Availability updated successfully", item, nil)
}

func (c *Controller) DeleteItem(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid menu item ID", nil, nil)
		return
	}

	if err := c.service.DeleteItem(ctx.Request.Context(), id); err != nil {
		switch err {
		case ErrMenuItemNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Menu item not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete menu item", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Menu item deleted successfully", nil, nil)
}

func (c *Controller) ToggleFavorite(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	menuItemID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid menu item ID", nil, nil)
		return
	}

	isFavorite, err := c.service.ToggleFavorite(ctx.Request.Context(), userID, menuItemID)
	if err != nil {
		switch err {
		case ErrMenuItemNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Menu item not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to toggle favorite", nil, nil)
		}
		return
	}

	msg := "Item removed from favorites"
	if isFavorite {
		msg = "Item added to favorites"
	}
	response.RespondJSON(ctx, "success", http.StatusOK, msg, gin.H{"favorite": isFavorite}, nil)
}

func (c *Controller) GetFavorites(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	favorites, err := c.service.GetFavorites(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch favorites", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Favorites fetched successfully", favorites, nil)
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
