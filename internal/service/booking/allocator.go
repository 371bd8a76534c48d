// internal/service/booking/allocator.go
package booking

import (
	"context"
	"fmt"
	"math"
	"time"

	"fleetride-service/internal/domain/booking"
	"fleetride-service/internal/domain/car"
	"fleetride-service/internal/domain/driver"
	"fleetride-service/internal/domain/user"
	xerrors "fleetride-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// BookingService allocates cars and drivers to bookings and drives the
// booking lifecycle. All resource writes are conditional updates, so
// concurrent requests for the same car resolve to exactly one winner.
type BookingService struct {
	bookingRepo booking.Repository
	carRepo     car.Repository
	driverRepo  driver.Repository
	userRepo    user.Repository
	rideFare    float64
	logger      *zap.Logger
}

func NewBookingService(
	bookingRepo booking.Repository,
	carRepo car.Repository,
	driverRepo driver.Repository,
	userRepo user.Repository,
	rideFare float64,
	logger *zap.Logger,
) *BookingService {
	if rideFare <= 0 {
		rideFare = 100
	}
	return &BookingService{
		bookingRepo: bookingRepo,
		carRepo:     carRepo,
		driverRepo:  driverRepo,
		userRepo:    userRepo,
		rideFare:    rideFare,
		logger:      logger,
	}
}

// allocation tracks resources reserved so far in one Create call, so a
// failure can hand everything back before returning.
type allocation struct {
	cars    []*car.Car
	drivers []*driver.Driver
}

// Create reserves every requested car (and, for rides, one driver per
// car), prices the booking and persists it as CONFIRMED. Any failure
// mid-allocation releases what was already taken and nothing is stored.
func (s *BookingService) Create(ctx context.Context, userID int64, bookingType booking.Type, req *booking.CreateRequest) (*booking.Booking, error) {
	if err := s.validateCreate(userID, bookingType, req); err != nil {
		return nil, err
	}

	target := car.StatusOnRide
	if bookingType == booking.TypeRental {
		target = car.StatusRented
	}

	var alloc allocation
	entries := make([]booking.CarEntry, 0, len(req.Cars))

	for _, cr := range req.Cars {
		reserved, err := s.reserveCar(ctx, cr.CarID, target)
		if err != nil {
			s.rollback(ctx, &alloc)
			return nil, err
		}
		alloc.cars = append(alloc.cars, reserved)

		entry := booking.CarEntry{
			CarID:  reserved.ID,
			Status: booking.StatusConfirmed,
			Car:    reserved.Info(),
		}

		if bookingType == booking.TypeRide {
			claimed, err := s.driverRepo.ClaimAvailable(ctx, reserved.ID)
			if err != nil {
				s.rollback(ctx, &alloc)
				return nil, fmt.Errorf("failed to claim driver: %w", err)
			}
			if claimed == nil {
				s.rollback(ctx, &alloc)
				return nil, xerrors.Conflictf("no available driver for car %s", reserved.Model)
			}
			alloc.drivers = append(alloc.drivers, claimed)
			entry.DriverID = &claimed.ID
			entry.Driver = &driver.Info{ID: claimed.ID, LicenseNumber: claimed.LicenseNumber}
		}

		entries = append(entries, entry)
	}

	total := s.price(bookingType, req, alloc.cars)

	b := &booking.Booking{
		UserID:          userID,
		Type:            bookingType,
		Status:          booking.StatusConfirmed,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		TotalAmount:     total,
		Cars:            entries,
	}
	if err := s.bookingRepo.Create(ctx, b); err != nil {
		s.rollback(ctx, &alloc)
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	if u, err := s.userRepo.FindByID(ctx, userID); err != nil {
		// The booking is already committed; return it without the user
		// sub-record rather than failing the whole request.
		s.logger.Warn("failed to load booking user",
			zap.Int64("booking_id", b.ID),
			zap.Int64("user_id", userID),
			zap.Error(err))
	} else {
		b.User = u.Info()
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", b.ID),
		zap.Int64("user_id", userID),
		zap.String("type", string(bookingType)),
		zap.Int("cars", len(entries)),
		zap.Float64("total", total))
	return b, nil
}

func (s *BookingService) validateCreate(userID int64, bookingType booking.Type, req *booking.CreateRequest) error {
	if userID <= 0 || !bookingType.Valid() || req.StartTime.IsZero() || len(req.Cars) == 0 {
		return xerrors.Validationf("missing required fields")
	}
	switch bookingType {
	case booking.TypeRental:
		if req.EndTime == nil || !req.EndTime.After(req.StartTime) {
			return xerrors.Validationf("rental requires an end time after the start time")
		}
	case booking.TypeRide:
		if req.DropoffLocation == nil {
			return xerrors.Validationf("ride requires a dropoff location")
		}
	}
	return nil
}

// reserveCar is the per-car allocation gate. The conditional update is
// the availability check; a miss on an existing car means someone else
// holds it.
func (s *BookingService) reserveCar(ctx context.Context, carID int64, target car.Status) (*car.Car, error) {
	reserved, err := s.carRepo.Reserve(ctx, carID, target)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve car: %w", err)
	}
	if reserved != nil {
		return reserved, nil
	}

	existing, err := s.carRepo.FindByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	return nil, xerrors.Conflictf("car %s (%s) is not available", existing.Model, existing.LicensePlate)
}

// rollback hands back everything this request reserved. Releases are
// idempotent; failures are logged and left to the reconciler.
func (s *BookingService) rollback(ctx context.Context, alloc *allocation) {
	for _, c := range alloc.cars {
		if err := s.carRepo.Release(ctx, c.ID); err != nil {
			s.logger.Error("rollback failed to release car",
				zap.Int64("car_id", c.ID), zap.Error(err))
		}
	}
	for _, d := range alloc.drivers {
		if err := s.driverRepo.Release(ctx, d.ID); err != nil {
			s.logger.Error("rollback failed to release driver",
				zap.Int64("driver_id", d.ID), zap.Error(err))
		}
	}
}

func (s *BookingService) price(bookingType booking.Type, req *booking.CreateRequest, cars []*car.Car) float64 {
	if bookingType == booking.TypeRide {
		return s.rideFare * float64(len(cars))
	}
	days := rentalDays(req.StartTime, *req.EndTime)
	var total float64
	for _, c := range cars {
		total += c.PricePerDay * float64(days)
	}
	return total
}

// rentalDays bills any started day in full, with a one-day minimum.
func rentalDays(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}
