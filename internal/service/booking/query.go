// internal/service/booking/query.go
package booking

import (
	"context"

	"fleetride-service/internal/domain/booking"
	"fleetride-service/internal/domain/user"
	xerrors "fleetride-service/internal/pkg/errors"
)

// Get returns one booking. Non-admins may only read their own.
func (s *BookingService) Get(ctx context.Context, id, requesterID int64, requesterRole user.Role) (*booking.Booking, error) {
	b, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != requesterID && requesterRole != user.RoleAdmin {
		return nil, xerrors.Forbiddenf("booking %d does not belong to you", id)
	}
	return b, nil
}

// ListByUser returns the user's bookings, newest first, optionally
// filtered by type.
func (s *BookingService) ListByUser(ctx context.Context, userID int64, bookingType booking.Type) ([]booking.Booking, error) {
	if bookingType != "" && !bookingType.Valid() {
		return nil, xerrors.Validationf("unknown booking type %q", bookingType)
	}
	return s.bookingRepo.ListByUser(ctx, userID, bookingType)
}
