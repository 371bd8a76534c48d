package booking

import (
	"time"

	"fleetride-service/internal/domain/car"
	"fleetride-service/internal/domain/driver"
	"fleetride-service/internal/domain/user"
)

type Type string

const (
	TypeRide   Type = "RIDE"
	TypeRental Type = "RENTAL"
)

// Valid reports whether t is a known booking type.
func (t Type) Valid() bool {
	return t == TypeRide || t == TypeRental
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusOngoing   Status = "ONGOING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Valid reports whether s is a known booking status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Location is a pickup or dropoff point: address plus [lng, lat].
type Location struct {
	Address     string    `json:"address"`
	Coordinates []float64 `json:"coordinates"`
}

// CarEntry is one reserved car inside a booking. DriverID is populated
// for ride bookings only; the entry status mirrors the parent at
// creation time.
type CarEntry struct {
	ID       int64  `json:"id" db:"id"`
	CarID    int64  `json:"car_id" db:"car_id"`
	DriverID *int64 `json:"driver_id,omitempty" db:"driver_id"`
	Status   Status `json:"status" db:"status"`

	Car    *car.Info    `json:"car,omitempty" db:"-"`
	Driver *driver.Info `json:"driver,omitempty" db:"-"`
}

// Booking reserves one or more cars (and drivers, for rides) over a time
// window on behalf of a user. TotalAmount is computed at creation and
// immutable afterward; only the lifecycle manager mutates Status.
type Booking struct {
	ID              int64      `json:"id" db:"id"`
	UserID          int64      `json:"user_id" db:"user_id"`
	Type            Type       `json:"booking_type" db:"booking_type"`
	Status          Status     `json:"status" db:"status"`
	StartTime       time.Time  `json:"start_time" db:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty" db:"end_time"`
	PickupLocation  Location   `json:"pickup_location" db:"pickup_location"`
	DropoffLocation *Location  `json:"dropoff_location,omitempty" db:"dropoff_location"`
	TotalAmount     float64    `json:"total_amount" db:"total_amount"`
	Cars            []CarEntry `json:"cars" db:"-"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`

	User *user.Info `json:"user,omitempty" db:"-"`
}
