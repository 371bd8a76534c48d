package payment

// CreateRequest records a payment against a booking.
type CreateRequest struct {
	BookingID int64   `json:"booking_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,min=0"`
	Method    Method  `json:"method" binding:"required"`
}

// UpdateStatusRequest is the payload for PUT /payments/:id/status.
type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required"`
}
