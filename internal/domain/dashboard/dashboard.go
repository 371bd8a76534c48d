package dashboard

import "context"

// Overview is the admin snapshot of the whole platform.
type Overview struct {
	TotalUsers       int64   `json:"total_users"`
	TotalCars        int64   `json:"total_cars"`
	TotalDrivers     int64   `json:"total_drivers"`
	TotalBookings    int64   `json:"total_bookings"`
	TotalPayments    int64   `json:"total_payments"`
	ActiveRides      int64   `json:"active_rides"`
	ActiveRentals    int64   `json:"active_rentals"`
	AvailableCars    int64   `json:"available_cars"`
	AvailableDrivers int64   `json:"available_drivers"`
	Revenue          float64 `json:"revenue"`
}

type Repository interface {
	Overview(ctx context.Context) (*Overview, error)
}
