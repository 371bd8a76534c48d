// internal/handlers/payment/payment_handler.go
package payment

import (
	"net/http"
	"strconv"

	"fleetride-service/internal/domain/payment"
	"fleetride-service/internal/middleware"
	"fleetride-service/internal/pkg/response"
	service "fleetride-service/internal/service/payment"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
}

func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Create records a payment against a booking
func (h *PaymentHandler) Create(c *gin.Context) {
	requesterID := middleware.MustGetUserID(c)

	var req payment.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.paymentService.Create(c.Request.Context(), requesterID, middleware.GetRole(c), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "payment recorded successfully", result)
}

// Get returns one payment (self or admin)
func (h *PaymentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payment ID", err)
		return
	}

	requesterID := middleware.MustGetUserID(c)
	result, err := h.paymentService.Get(c.Request.Context(), id, requesterID, middleware.GetRole(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "payment retrieved", result)
}

// ListByUser returns a user's payments (self or admin)
func (h *PaymentHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user ID", err)
		return
	}
	if userID != middleware.MustGetUserID(c) && !middleware.IsAdmin(c) {
		response.Forbidden(c, "you may only list your own payments")
		return
	}

	result, err := h.paymentService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "payments retrieved", result)
}

// UpdateStatus marks a payment PAID or FAILED (admin)
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payment ID", err)
		return
	}

	var req payment.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.paymentService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "payment status updated", result)
}
