package notifications

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tavola/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) GetNotifications(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	list, err := c.service.GetNotifications(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch notifications", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Notifications fetched successfully", list, nil)
}

func (c *Controller) GetUnread(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	list, err := c.service.GetUnread(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch unread notifications", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Unread notifications fetched successfully", list, nil)
}

func (c *Controller) CountUnread(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	count, err := c.service.CountUnread(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to count unread notifications", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Unread count fetched successfully", gin.H{"count": count}, nil)
}

func (c *Controller) MarkRead(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	notificationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid notification ID", nil, nil)
		return
	}

	if err := c.service.MarkRead(ctx.Request.Context(), userID, notificationID); err != nil {
		switch err {
		case ErrNotificationNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Notification not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to mark notification as read", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Notification marked as read", nil, nil)
}

func (c *Controller) MarkAllRead(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	if err := c.service.MarkAllRead(ctx.Request.Context(), userID); err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to mark notifications as read", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "All notifications marked as read", nil, nil)
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
