package booking

import (
	"context"
	"testing"

	"fleetride-service/internal/domain/booking"
	"fleetride-service/internal/domain/car"
	"fleetride-service/internal/domain/driver"
	"fleetride-service/internal/domain/user"
	xerrors "fleetride-service/internal/pkg/errors"
)

// createRide allocates a one-car ride for user 7 and returns it with
// its repos for further assertions.
func createRide(t *testing.T) (*BookingService, *fakeCarRepo, *fakeDriverRepo, *booking.Booking) {
	t.Helper()
	cars := newFakeCarRepo(availableCar(1, 0))
	drivers := newFakeDriverRepo(availableDriver(1))
	bookings := newFakeBookingRepo()
	svc := testService(cars, drivers, bookings)

	b, err := svc.Create(context.Background(), 7, booking.TypeRide, rideRequest(1))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return svc, cars, drivers, b
}

func TestUpdateStatusToOngoing(t *testing.T) {
	svc, cars, _, b := createRide(t)

	updated, err := svc.UpdateStatus(context.Background(), b.ID, booking.StatusOngoing)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != booking.StatusOngoing {
		t.Errorf("status = %s, want ONGOING", updated.Status)
	}
	// A trip in progress keeps its resources.
	if got := cars.status(1); got != car.StatusOnRide {
		t.Errorf("car status = %s, want ON_RIDE", got)
	}
}

func TestUpdateStatusCompletedReleasesResources(t *testing.T) {
	svc, cars, drivers, b := createRide(t)

	if _, err := svc.UpdateStatus(context.Background(), b.ID, booking.StatusOngoing); err != nil {
		t.Fatalf("to ONGOING: %v", err)
	}
	updated, err := svc.UpdateStatus(context.Background(), b.ID, booking.StatusCompleted)
	if err != nil {
		t.Fatalf("to COMPLETED: %v", err)
	}

	if updated.Status != booking.StatusCompleted {
		t.Errorf("status = %s, want COMPLETED", updated.Status)
	}
	if updated.EndTime == nil {
		t.Error("completed booking should have an end time")
	}
	if got := cars.status(1); got != car.StatusAvailable {
		t.Errorf("car status = %s, want AVAILABLE", got)
	}
	if got := drivers.status(1); got != driver.StatusAvailable {
		t.Errorf("driver status = %s, want AVAILABLE", got)
	}
	if got := drivers.currentCar(1); got != nil {
		t.Errorf("released driver should hold no car, got %d", *got)
	}
}

func TestCancelEndTimeStamping(t *testing.T) {
	// Cancelling before the trip starts records no end time.
	svc, _, _, b := createRide(t)
	cancelled, err := svc.Cancel(context.Background(), b.ID, 7, user.RoleUser)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if cancelled.EndTime != nil {
		t.Errorf("pre-trip cancel end time = %v, want nil", cancelled.EndTime)
	}

	// Cancelling mid-trip stamps when the trip actually ended.
	svc, _, _, b = createRide(t)
	if _, err := svc.UpdateStatus(context.Background(), b.ID, booking.StatusOngoing); err != nil {
		t.Fatalf("to ONGOING: %v", err)
	}
	cancelled, err = svc.Cancel(context.Background(), b.ID, 7, user.RoleUser)
	if err != nil {
		t.Fatalf("mid-trip Cancel: %v", err)
	}
	if cancelled.EndTime == nil {
		t.Error("mid-trip cancel should stamp an end time")
	}
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	svc, _, _, b := createRide(t)

	// CONFIRMED cannot jump straight to COMPLETED.
	_, err := svc.UpdateStatus(context.Background(), b.ID, booking.StatusCompleted)
	if !xerrors.Is(err, xerrors.ErrInvalidState) {
		t.Errorf("err = %v, want ErrInvalidState", err)
	}
}

func TestUpdateStatusUnknownBooking(t *testing.T) {
	svc := testService(newFakeCarRepo(), newFakeDriverRepo(), newFakeBookingRepo())

	_, err := svc.UpdateStatus(context.Background(), 42, booking.StatusCancelled)
	if !xerrors.Is(err, xerrors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateStatusSurfacesReleaseFailure(t *testing.T) {
	svc, cars, _, b := createRide(t)
	cars.failRelease = map[int64]error{1: context.DeadlineExceeded}

	_, err := svc.UpdateStatus(context.Background(), b.ID, booking.StatusCancelled)
	if err == nil {
		t.Fatal("expected release failure to surface")
	}

	// The status write stands even though the release failed.
	got, ferr := svc.Get(context.Background(), b.ID, 7, user.RoleUser)
	if ferr != nil {
		t.Fatalf("Get: %v", ferr)
	}
	if got.Status != booking.StatusCancelled {
		t.Errorf("status = %s, want CANCELLED", got.Status)
	}
}

func TestCancelByOwner(t *testing.T) {
	svc, cars, drivers, b := createRide(t)

	cancelled, err := svc.Cancel(context.Background(), b.ID, 7, user.RoleUser)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if cancelled.Status != booking.StatusCancelled {
		t.Errorf("status = %s, want CANCELLED", cancelled.Status)
	}
	if got := cars.status(1); got != car.StatusAvailable {
		t.Errorf("car status = %s, want AVAILABLE", got)
	}
	if got := drivers.status(1); got != driver.StatusAvailable {
		t.Errorf("driver status = %s, want AVAILABLE", got)
	}
	if got := drivers.currentCar(1); got != nil {
		t.Errorf("released driver should hold no car, got %d", *got)
	}
}

func TestCancelByStranger(t *testing.T) {
	svc, _, _, b := createRide(t)

	_, err := svc.Cancel(context.Background(), b.ID, 99, user.RoleUser)
	if !xerrors.Is(err, xerrors.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestCancelByAdmin(t *testing.T) {
	svc, _, _, b := createRide(t)

	if _, err := svc.Cancel(context.Background(), b.ID, 99, user.RoleAdmin); err != nil {
		t.Errorf("admin cancel: %v", err)
	}
}

func TestCancelTerminalBooking(t *testing.T) {
	svc, _, _, b := createRide(t)

	if _, err := svc.Cancel(context.Background(), b.ID, 7, user.RoleUser); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	_, err := svc.Cancel(context.Background(), b.ID, 7, user.RoleUser)
	if !xerrors.Is(err, xerrors.ErrInvalidState) {
		t.Errorf("err = %v, want ErrInvalidState", err)
	}
}

func TestGetAuthorization(t *testing.T) {
	svc, _, _, b := createRide(t)

	if _, err := svc.Get(context.Background(), b.ID, 7, user.RoleUser); err != nil {
		t.Errorf("owner get: %v", err)
	}
	if _, err := svc.Get(context.Background(), b.ID, 99, user.RoleAdmin); err != nil {
		t.Errorf("admin get: %v", err)
	}
	if _, err := svc.Get(context.Background(), b.ID, 99, user.RoleUser); !xerrors.Is(err, xerrors.ErrForbidden) {
		t.Errorf("stranger get err = %v, want ErrForbidden", err)
	}
}
