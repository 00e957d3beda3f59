package cards

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

func (c *Controller) AddCard(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req AddCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	card, err := c.service.AddCard(ctx.Request.Context(), userID, &req)
	if err != nil {
		switch err {
		case ErrInvalidCardNumber:
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid card number", nil, nil)
		case ErrCardExpired:
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Card is expired", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to add card", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Card added successfully", card, nil)
}

func (c *Controller) GetCards(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	cards, err := c.service.GetCards(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch cards", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Cards fetched successfully", cards, nil)
}

func (c *Controller) SetDefault(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	cardID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid card ID", nil, nil)
		return
	}

	card, err := c.service.SetDefault(ctx.Request.Context(), userID, cardID)
	if err != nil {
		switch err {
		case ErrCardNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Card not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to set default card", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Default card updated successfully", card, nil)
}

func (c *Controller) DeleteCard(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	cardID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid card ID", nil, nil)
		return
	}

	if err := c.service.DeleteCard(ctx.Request.Context(), userID, cardID); err != nil {
		switch err {
		case ErrCardNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Card not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete card", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Card deleted successfully", nil, nil)
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
