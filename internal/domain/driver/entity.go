package driver

import (
	"time"

	"fleetride-service/internal/domain/car"
	"fleetride-service/internal/domain/user"
)

type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusOnRide    Status = "ON_RIDE"
	StatusOffline   Status = "OFFLINE"
)

// Valid reports whether s is a known driver status.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusOnRide, StatusOffline:
		return true
	}
	return false
}

// Driver links a user account to a driving license and tracks the one
// car the driver currently holds. CurrentCarID is set exactly while the
// driver is ON_RIDE for an active booking.
type Driver struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"user_id" db:"user_id"`
	LicenseNumber string    `json:"license_number" db:"license_number"`
	Status        Status    `json:"status" db:"status"`
	CurrentCarID  *int64    `json:"current_car_id,omitempty" db:"current_car_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	// Populated references for responses.
	User       *user.Info `json:"user,omitempty" db:"-"`
	CurrentCar *car.Info  `json:"current_car,omitempty" db:"-"`
}

// Info is the lightweight shape embedded in booking responses.
type Info struct {
	ID            int64      `json:"id"`
	LicenseNumber string     `json:"license_number"`
	User          *user.Info `json:"user,omitempty"`
}
