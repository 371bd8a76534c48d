package booking

import "time"

// CarRequest names one car the client wants in the booking.
type CarRequest struct {
	CarID int64 `json:"carId" binding:"required"`
}

// CreateRequest is the payload for POST /rides and POST /rentals; the
// handler fills UserID from the authenticated identity and Type from the
// route.
type CreateRequest struct {
	StartTime       time.Time    `json:"startTime" binding:"required"`
	EndTime         *time.Time   `json:"endTime,omitempty"`
	PickupLocation  Location     `json:"pickupLocation" binding:"required"`
	DropoffLocation *Location    `json:"dropoffLocation,omitempty"`
	Cars            []CarRequest `json:"cars" binding:"required,min=1,dive"`
}

// UpdateStatusRequest is the payload for PUT /{rides|rentals}/:id/status.
type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required"`
}

// ListFilters narrows booking listings.
type ListFilters struct {
	Type Type `form:"type"`
}
