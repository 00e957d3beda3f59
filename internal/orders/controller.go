package orders

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"tavola/internal/cards"
	"tavola/internal/cart"
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

func (c *Controller) CreateOrder(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	order, err := c.service.CreateOrder(ctx.Request.Context(), userID, &req)
	if err != nil {
		switch err {
		case ErrEmptyCart:
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Cart is empty", nil, nil)
		case cart.ErrCartNotFound:
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Cart is empty", nil, nil)
		case cards.ErrCardNotFound:
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Payment card not found", nil, nil)
		case ErrInvalidOrderType:
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid order type", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to place order", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Order placed successfully", order, nil)
}

func (c *Controller) GetOrders(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	orders, err := c.service.GetOrders(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch orders", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Orders fetched successfully", orders, nil)
}

func (c *Controller) GetOrder(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid order ID", nil, nil)
		return
	}

	order, err := c.service.GetOrder(ctx.Request.Context(), userID, orderID)
	if err != nil {
		switch err {
		case ErrOrderNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Order not found", nil, nil)
		case ErrForbidden:
			response.RespondJSON(ctx, "error", http.StatusForbidden, "You do not have access to this order", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch order", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Order fetched successfully", order, nil)
}

func (c *Controller) GetAllOrders(ctx *gin.Context) {
	if status := ctx.Query("status"); status != "" {
		orders, err := c.service.GetOrdersByStatus(ctx.Request.Context(), status)
		if err != nil {
			switch err {
			case ErrInvalidStatus:
				response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid order status", nil, nil)
			default:
				response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch orders", nil, nil)
			}
			return
		}
		response.RespondJSON(ctx, "success", http.StatusOK, "Orders fetched successfully", orders, nil)
		return
	}

	orders, err := c.service.GetAllOrders(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch orders", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Orders fetched successfully", orders, nil)
}

func (c *Controller) UpdateStatus(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid order ID", nil, nil)
		return
	}

	var req UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	order, err := c.service.UpdateStatus(ctx.Request.Context(), orderID, req.Status)
	if err != nil {
		switch err {
		case ErrOrderNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Order not found", nil, nil)
		case ErrInvalidStatus:
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid order status", nil, nil)
		case ErrInvalidStatusTransition:
			response.RespondJSON(ctx, "error", http.StatusConflict, "Invalid order status transition", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update order status", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Order status updated successfully", order, nil)
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
