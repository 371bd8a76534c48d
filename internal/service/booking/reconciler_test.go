package booking

import (
	"context"
	"testing"
	"time"

	"fleetride-service/internal/domain/booking"
	"fleetride-service/internal/domain/car"
	"fleetride-service/internal/domain/driver"

	"go.uber.org/zap"
)

func TestSweepSkipsFreshReservations(t *testing.T) {
	cars := newFakeCarRepo(availableCar(1, 0))
	drivers := newFakeDriverRepo(availableDriver(1))
	svc := testService(cars, drivers, newFakeBookingRepo())
	rec := NewReconciler(cars, drivers, 10*time.Minute, zap.NewNop())

	// A booking in flight: car reserved and driver claimed moments ago,
	// booking row not written yet.
	if _, err := cars.Reserve(context.Background(), 1, car.StatusOnRide); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if _, err := drivers.ClaimAvailable(context.Background(), 1); err != nil {
		t.Fatalf("ClaimAvailable: %v", err)
	}

	rec.Sweep(context.Background())

	if got := cars.status(1); got != car.StatusOnRide {
		t.Errorf("fresh reservation swept: car status = %s, want ON_RIDE", got)
	}
	if got := drivers.status(1); got != driver.StatusOnRide {
		t.Errorf("fresh claim swept: driver status = %s, want ON_RIDE", got)
	}

	// The car must still be unbookable while the allocation completes.
	if _, err := svc.Create(context.Background(), 7, booking.TypeRide, rideRequest(1)); err == nil {
		t.Error("second booking won a car held by an in-flight allocation")
	}
}

func TestSweepReleasesStaleOrphans(t *testing.T) {
	cars := newFakeCarRepo(availableCar(1, 0))
	drivers := newFakeDriverRepo(availableDriver(1))
	rec := NewReconciler(cars, drivers, 10*time.Minute, zap.NewNop())

	if _, err := cars.Reserve(context.Background(), 1, car.StatusRented); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if _, err := drivers.ClaimAvailable(context.Background(), 1); err != nil {
		t.Fatalf("ClaimAvailable: %v", err)
	}
	cars.backdate(1, time.Hour)
	drivers.backdate(1, time.Hour)

	rec.Sweep(context.Background())

	if got := cars.status(1); got != car.StatusAvailable {
		t.Errorf("stale orphan not swept: car status = %s, want AVAILABLE", got)
	}
	if got := drivers.status(1); got != driver.StatusAvailable {
		t.Errorf("stale orphan not swept: driver status = %s, want AVAILABLE", got)
	}
	if got := drivers.currentCar(1); got != nil {
		t.Errorf("swept driver should hold no car, got %d", *got)
	}
}
