package car

import "time"

type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusOnRide      Status = "ON_RIDE"
	StatusRented      Status = "RENTED"
	StatusMaintenance Status = "MAINTENANCE"
)

// Valid reports whether s is a known car status.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusOnRide, StatusRented, StatusMaintenance:
		return true
	}
	return false
}

// Car is a fleet vehicle. Status is the single availability field the
// allocator reserves against; only an AVAILABLE car may join a booking.
type Car struct {
	ID           int64     `json:"id" db:"id"`
	Model        string    `json:"model" db:"model"`
	LicensePlate string    `json:"license_plate" db:"license_plate"`
	Capacity     int       `json:"capacity" db:"capacity"`
	PricePerKm   float64   `json:"price_per_km" db:"price_per_km"`
	PricePerDay  float64   `json:"price_per_day" db:"price_per_day"`
	Status       Status    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Info is the lightweight shape embedded in booking responses.
type Info struct {
	ID           int64  `json:"id"`
	Model        string `json:"model"`
	LicensePlate string `json:"license_plate"`
	Capacity     int    `json:"capacity,omitempty"`
}

func (c *Car) Info() *Info {
	return &Info{
		ID:           c.ID,
		Model:        c.Model,
		LicensePlate: c.LicensePlate,
		Capacity:     c.Capacity,
	}
}
