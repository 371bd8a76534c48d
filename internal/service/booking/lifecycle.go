// internal/service/booking/lifecycle.go
package booking

import (
	"context"
	"fmt"

	"fleetride-service/internal/domain/booking"
	"fleetride-service/internal/domain/user"
	xerrors "fleetride-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// UpdateStatus advances a booking along the transition table. The write
// is a compare-and-swap guarded by the loaded status, so two concurrent
// updates cannot both win. Terminal transitions release the booking's
// cars and drivers.
func (s *BookingService) UpdateStatus(ctx context.Context, id int64, target booking.Status) (*booking.Booking, error) {
	if !target.Valid() {
		return nil, xerrors.Validationf("unknown booking status %q", target)
	}

	b, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.Status == target {
		if b.Status.Terminal() {
			return nil, xerrors.InvalidStatef("booking %d is already %s", id, b.Status)
		}
		return b, nil
	}
	if !booking.CanTransition(b.Status, target) {
		return nil, xerrors.InvalidStatef("booking %d cannot move from %s to %s", id, b.Status, target)
	}

	stampEnd := target == booking.StatusCompleted ||
		(target == booking.StatusCancelled && b.Status == booking.StatusOngoing)

	ok, err := s.bookingRepo.UpdateStatusIf(ctx, id, b.Status, target, stampEnd)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, xerrors.Conflictf("booking %d was modified concurrently", id)
	}

	s.logger.Info("booking status changed",
		zap.Int64("booking_id", id),
		zap.String("from", string(b.Status)),
		zap.String("to", string(target)))

	var releaseErr error
	if target.Terminal() {
		releaseErr = s.releaseResources(ctx, b)
	}

	updated, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if releaseErr != nil {
		// The status write stands; the reconciler will retry the
		// releases that failed here.
		return updated, releaseErr
	}
	return updated, nil
}

// Cancel cancels a booking on behalf of its owner or an admin.
func (s *BookingService) Cancel(ctx context.Context, id, requesterID int64, requesterRole user.Role) (*booking.Booking, error) {
	b, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != requesterID && requesterRole != user.RoleAdmin {
		return nil, xerrors.Forbiddenf("booking %d does not belong to you", id)
	}
	if !booking.Cancellable(b.Status) {
		return nil, xerrors.InvalidStatef("cannot cancel this booking")
	}
	return s.UpdateStatus(ctx, id, booking.StatusCancelled)
}

// releaseResources hands back every car and driver on the booking with
// independent idempotent writes. Partial failures are aggregated and
// surfaced so callers know the reconciler has work left.
func (s *BookingService) releaseResources(ctx context.Context, b *booking.Booking) error {
	var failed int
	for _, entry := range b.Cars {
		if err := s.carRepo.Release(ctx, entry.CarID); err != nil {
			failed++
			s.logger.Error("failed to release car",
				zap.Int64("booking_id", b.ID),
				zap.Int64("car_id", entry.CarID),
				zap.Error(err))
		}
		if entry.DriverID == nil {
			continue
		}
		if err := s.driverRepo.Release(ctx, *entry.DriverID); err != nil {
			failed++
			s.logger.Error("failed to release driver",
				zap.Int64("booking_id", b.ID),
				zap.Int64("driver_id", *entry.DriverID),
				zap.Error(err))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d resource release(s) failed for booking %d: %w", failed, b.ID, xerrors.ErrInternal)
	}
	return nil
}
