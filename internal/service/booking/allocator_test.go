package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"fleetride-service/internal/domain/booking"
	"fleetride-service/internal/domain/car"
	"fleetride-service/internal/domain/driver"
	"fleetride-service/internal/domain/user"
	xerrors "fleetride-service/internal/pkg/errors"

	"go.uber.org/zap"
)

func availableCar(id int64, pricePerDay float64) *car.Car {
	return &car.Car{
		ID:           id,
		Model:        "Corolla",
		LicensePlate: "KDA 001A",
		Capacity:     4,
		PricePerDay:  pricePerDay,
		Status:       car.StatusAvailable,
	}
}

func availableDriver(id int64) *driver.Driver {
	return &driver.Driver{ID: id, UserID: id + 100, LicenseNumber: "DL-001", Status: driver.StatusAvailable}
}

func testService(cars *fakeCarRepo, drivers *fakeDriverRepo, bookings *fakeBookingRepo) *BookingService {
	users := newFakeUserRepo(&user.User{ID: 7, FirstName: "Jane", Role: user.RoleUser})
	return NewBookingService(bookings, cars, drivers, users, 100, zap.NewNop())
}

func rideRequest(carIDs ...int64) *booking.CreateRequest {
	req := &booking.CreateRequest{
		StartTime:       time.Now().Add(time.Hour),
		PickupLocation:  booking.Location{Address: "CBD", Coordinates: []float64{36.82, -1.29}},
		DropoffLocation: &booking.Location{Address: "Westlands", Coordinates: []float64{36.80, -1.26}},
	}
	for _, id := range carIDs {
		req.Cars = append(req.Cars, booking.CarRequest{CarID: id})
	}
	return req
}

func TestCreateRide(t *testing.T) {
	cars := newFakeCarRepo(availableCar(1, 0))
	drivers := newFakeDriverRepo(availableDriver(1))
	bookings := newFakeBookingRepo()
	svc := testService(cars, drivers, bookings)

	b, err := svc.Create(context.Background(), 7, booking.TypeRide, rideRequest(1))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if b.Status != booking.StatusConfirmed {
		t.Errorf("status = %s, want CONFIRMED", b.Status)
	}
	if b.TotalAmount != 100 {
		t.Errorf("total = %v, want 100", b.TotalAmount)
	}
	if len(b.Cars) != 1 || b.Cars[0].DriverID == nil {
		t.Fatalf("expected one car entry with a driver, got %+v", b.Cars)
	}
	if got := cars.status(1); got != car.StatusOnRide {
		t.Errorf("car status = %s, want ON_RIDE", got)
	}
	if got := drivers.status(1); got != driver.StatusOnRide {
		t.Errorf("driver status = %s, want ON_RIDE", got)
	}
	if got := drivers.currentCar(1); got == nil || *got != 1 {
		t.Errorf("driver current car = %v, want 1", got)
	}
}

func TestCreateRentalPricing(t *testing.T) {
	cars := newFakeCarRepo(availableCar(1, 500), availableCar(2, 300))
	cars.cars[2].LicensePlate = "KDA 002B"
	drivers := newFakeDriverRepo()
	bookings := newFakeBookingRepo()
	svc := testService(cars, drivers, bookings)

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Hour) // bills as 2 days
	req := &booking.CreateRequest{
		StartTime:      start,
		EndTime:        &end,
		PickupLocation: booking.Location{Address: "Airport"},
		Cars:           []booking.CarRequest{{CarID: 1}, {CarID: 2}},
	}

	b, err := svc.Create(context.Background(), 7, booking.TypeRental, req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if want := float64(2 * (500 + 300)); b.TotalAmount != want {
		t.Errorf("total = %v, want %v", b.TotalAmount, want)
	}
	if got := cars.status(1); got != car.StatusRented {
		t.Errorf("car 1 status = %s, want RENTED", got)
	}
	if len(b.Cars) != 2 || b.Cars[0].DriverID != nil {
		t.Fatalf("rental entries should carry no drivers, got %+v", b.Cars)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := testService(newFakeCarRepo(), newFakeDriverRepo(), newFakeBookingRepo())
	start := time.Now()

	tests := []struct {
		name string
		typ  booking.Type
		req  *booking.CreateRequest
	}{
		{"no cars", booking.TypeRide, &booking.CreateRequest{
			StartTime:       start,
			DropoffLocation: &booking.Location{Address: "x"},
		}},
		{"rental without end time", booking.TypeRental, &booking.CreateRequest{
			StartTime: start,
			Cars:      []booking.CarRequest{{CarID: 1}},
		}},
		{"rental end before start", booking.TypeRental, func() *booking.CreateRequest {
			end := start.Add(-time.Hour)
			return &booking.CreateRequest{
				StartTime: start,
				EndTime:   &end,
				Cars:      []booking.CarRequest{{CarID: 1}},
			}
		}()},
		{"ride without dropoff", booking.TypeRide, &booking.CreateRequest{
			StartTime: start,
			Cars:      []booking.CarRequest{{CarID: 1}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 7, tt.typ, tt.req)
			if !xerrors.Is(err, xerrors.ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreateCarNotFound(t *testing.T) {
	svc := testService(newFakeCarRepo(), newFakeDriverRepo(), newFakeBookingRepo())

	_, err := svc.Create(context.Background(), 7, booking.TypeRide, rideRequest(99))
	if !xerrors.Is(err, xerrors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateCarUnavailable(t *testing.T) {
	busy := availableCar(1, 0)
	busy.Status = car.StatusOnRide
	cars := newFakeCarRepo(busy)
	bookings := newFakeBookingRepo()
	svc := testService(cars, newFakeDriverRepo(availableDriver(1)), bookings)

	_, err := svc.Create(context.Background(), 7, booking.TypeRide, rideRequest(1))
	if !xerrors.Is(err, xerrors.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if len(bookings.bookings) != 0 {
		t.Errorf("no booking should be stored on conflict")
	}
	if got := cars.status(1); got != car.StatusOnRide {
		t.Errorf("busy car must keep its status, got %s", got)
	}
}

func TestCreateRollbackOnNoDriver(t *testing.T) {
	cars := newFakeCarRepo(availableCar(1, 0), availableCar(2, 0))
	cars.cars[2].LicensePlate = "KDA 002B"
	drivers := newFakeDriverRepo(availableDriver(1)) // only one driver for two cars
	bookings := newFakeBookingRepo()
	svc := testService(cars, drivers, bookings)

	_, err := svc.Create(context.Background(), 7, booking.TypeRide, rideRequest(1, 2))
	if !xerrors.Is(err, xerrors.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}

	// Everything reserved before the failure is handed back.
	if got := cars.status(1); got != car.StatusAvailable {
		t.Errorf("car 1 status = %s, want AVAILABLE", got)
	}
	if got := cars.status(2); got != car.StatusAvailable {
		t.Errorf("car 2 status = %s, want AVAILABLE", got)
	}
	if got := drivers.status(1); got != driver.StatusAvailable {
		t.Errorf("driver status = %s, want AVAILABLE", got)
	}
	if len(bookings.bookings) != 0 {
		t.Errorf("no booking should be stored after rollback")
	}
}

func TestCreateRollbackOnPersistFailure(t *testing.T) {
	cars := newFakeCarRepo(availableCar(1, 0))
	drivers := newFakeDriverRepo(availableDriver(1))
	bookings := newFakeBookingRepo()
	bookings.failCreate = context.DeadlineExceeded
	svc := testService(cars, drivers, bookings)

	_, err := svc.Create(context.Background(), 7, booking.TypeRide, rideRequest(1))
	if err == nil {
		t.Fatal("expected error")
	}
	if got := cars.status(1); got != car.StatusAvailable {
		t.Errorf("car status = %s, want AVAILABLE", got)
	}
	if got := drivers.status(1); got != driver.StatusAvailable {
		t.Errorf("driver status = %s, want AVAILABLE", got)
	}
}

func TestCreateSurvivesUserLookupFailure(t *testing.T) {
	cars := newFakeCarRepo(availableCar(1, 0))
	drivers := newFakeDriverRepo(availableDriver(1))
	bookings := newFakeBookingRepo()
	svc := testService(cars, drivers, bookings)

	// User 8 has no account record; the committed booking still returns,
	// just without the user sub-record.
	b, err := svc.Create(context.Background(), 8, booking.TypeRide, rideRequest(1))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.User != nil {
		t.Errorf("user sub-record = %+v, want nil", b.User)
	}
	if len(bookings.bookings) != 1 {
		t.Errorf("stored bookings = %d, want 1", len(bookings.bookings))
	}
}

func TestConcurrentCreateSingleWinner(t *testing.T) {
	cars := newFakeCarRepo(availableCar(1, 0))
	drivers := newFakeDriverRepo(availableDriver(1), availableDriver(2))
	bookings := newFakeBookingRepo()
	svc := testService(cars, drivers, bookings)

	const attempts = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Create(context.Background(), 7, booking.TypeRide, rideRequest(1)); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("wins = %d, want exactly 1", wins)
	}
	if len(bookings.bookings) != 1 {
		t.Errorf("stored bookings = %d, want 1", len(bookings.bookings))
	}
}

func TestRentalDays(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		hours float64
		want  int
	}{
		{1, 1},
		{24, 1},
		{25, 2},
		{48, 2},
		{49, 3},
	}
	for _, tt := range tests {
		end := start.Add(time.Duration(tt.hours * float64(time.Hour)))
		if got := rentalDays(start, end); got != tt.want {
			t.Errorf("rentalDays(%vh) = %d, want %d", tt.hours, got, tt.want)
		}
	}
}
