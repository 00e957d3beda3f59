package reservations

import (
	"net/http"
	"time"

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

// CheckAvailability reports which tables are taken around the requested
// slot. A missing or malformed date_time means "show nothing booked".
func (c *Controller) CheckAvailability(ctx *gin.Context) {
	var at time.Time
	if raw := ctx.Query("date_time"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err == nil {
			at = parsed
		}
	}

	occupied, err := c.service.CheckAvailability(ctx.Request.Context(), at)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to check availability", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Availability fetched successfully", gin.H{"occupied_tables": occupied}, nil)
}

func (c *Controller) CreateReservation(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req ReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	res, err := c.service.Reserve(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.respondReservationError(ctx, err, "Failed to create reservation")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Reservation created successfully", res, nil)
}

func (c *Controller) GetMyReservations(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	list, err := c.service.GetUserReservations(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch reservations", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservations fetched successfully", list, nil)
}

func (c *Controller) GetReservation(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid reservation ID", nil, nil)
		return
	}

	res, err := c.service.GetReservation(ctx.Request.Context(), id)
	if err != nil {
		c.respondReservationError(ctx, err, "Failed to fetch reservation")
		return
	}

	if res.UserID != userID && !isAdmin(ctx) {
		response.RespondJSON(ctx, "error", http.StatusForbidden, "You do not have access to this reservation", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation fetched successfully", res, nil)
}

func (c *Controller) CancelReservation(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid reservation ID", nil, nil)
		return
	}

	res, err := c.service.GetReservation(ctx.Request.Context(), id)
	if err != nil {
		c.respondReservationError(ctx, err, "Failed to cancel reservation")
		return
	}

	if res.UserID != userID && !isAdmin(ctx) {
		response.RespondJSON(ctx, "error", http.StatusForbidden, "You do not have access to this reservation", nil, nil)
		return
	}

	if err := c.service.Cancel(ctx.Request.Context(), id); err != nil {
		c.respondReservationError(ctx, err, "Failed to cancel reservation")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation cancelled successfully", nil, nil)
}

func (c *Controller) GetAllReservations(ctx *gin.Context) {
	list, err := c.service.GetAllReservations(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch reservations", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservations fetched successfully", list, nil)
}

func (c *Controller) UpdateReservation(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid reservation ID", nil, nil)
		return
	}

	var req ReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	res, err := c.service.UpdateReservation(ctx.Request.Context(), id, &req)
	if err != nil {
		c.respondReservationError(ctx, err, "Failed to update reservation")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation updated successfully", res, nil)
}

func (c *Controller) UpdateStatus(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid reservation ID", nil, nil)
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

	res, err := c.service.UpdateStatus(ctx.Request.Context(), id, req.Status)
	if err != nil {
		c.respondReservationError(ctx, err, "Failed to update reservation status")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation status updated successfully", res, nil)
}

func (c *Controller) respondReservationError(ctx *gin.Context, err error, fallback string) {
	switch {
	case AsValidation(err):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
	case AsConflict(err):
		response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), nil, nil)
	case err == ErrReservationNotFound:
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Reservation not found", nil, nil)
	case err == ErrInvalidStatus:
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid reservation status", nil, nil)
	case err == ErrInvalidStatusTransition:
		response.RespondJSON(ctx, "error", http.StatusConflict, "Invalid reservation status transition", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallback, nil, nil)
	}
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
