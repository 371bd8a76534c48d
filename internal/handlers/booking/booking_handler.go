// internal/handlers/booking/booking_handler.go
package booking

import (
	"net/http"
	"strconv"

	"fleetride-service/internal/domain/booking"
	"fleetride-service/internal/domain/user"
	"fleetride-service/internal/middleware"
	"fleetride-service/internal/pkg/response"
	service "fleetride-service/internal/service/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves both the /rides and /rentals groups; each group
// is registered with its booking type so the URLs stay separate while
// the allocation path is shared.
type BookingHandler struct {
	bookingService *service.BookingService
	bookingType    booking.Type
}

func NewBookingHandler(bookingService *service.BookingService, bookingType booking.Type) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		bookingType:    bookingType,
	}
}

func (h *BookingHandler) noun() string {
	if h.bookingType == booking.TypeRide {
		return "ride"
	}
	return "rental"
}

// Create allocates cars (and drivers for rides) and books them
func (h *BookingHandler) Create(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req booking.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.bookingService.Create(c.Request.Context(), userID, h.bookingType, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, h.noun()+" booked successfully", result)
}

// Get returns one booking (self or admin; rides also driver)
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid booking ID", err)
		return
	}

	requesterID := middleware.MustGetUserID(c)
	role := middleware.GetRole(c)
	if h.bookingType == booking.TypeRide && role == user.RoleDriver {
		// Drivers may inspect any ride they could be assigned to.
		role = user.RoleAdmin
	}

	result, err := h.bookingService.Get(c.Request.Context(), id, requesterID, role)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if result.Type != h.bookingType {
		response.NotFound(c, h.noun()+" not found")
		return
	}

	response.Success(c, http.StatusOK, h.noun()+" retrieved", result)
}

// ListByUser returns a user's bookings of this type (self or admin)
func (h *BookingHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user ID", err)
		return
	}
	if userID != middleware.MustGetUserID(c) && !middleware.IsAdmin(c) {
		response.Forbidden(c, "you may only list your own bookings")
		return
	}

	result, err := h.bookingService.ListByUser(c.Request.Context(), userID, h.bookingType)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, h.noun()+"s retrieved", result)
}

// UpdateStatus advances the booking lifecycle (admin; rides also driver)
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid booking ID", err)
		return
	}

	var req booking.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.bookingService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, h.noun()+" status updated", result)
}

// Cancel cancels the booking (owner or admin)
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid booking ID", err)
		return
	}

	requesterID := middleware.MustGetUserID(c)
	result, err := h.bookingService.Cancel(c.Request.Context(), id, requesterID, middleware.GetRole(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, h.noun()+" cancelled", result)
}
