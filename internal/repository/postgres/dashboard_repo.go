package postgres

import (
	"context"
	"fmt"

	"fleetride-service/internal/domain/dashboard"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DashboardRepository struct {
	db *pgxpool.Pool
}

func NewDashboardRepository(db *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Overview gathers the admin counters in one round trip.
func (r *DashboardRepository) Overview(ctx context.Context) (*dashboard.Overview, error) {
	query := `
		SELECT
			(SELECT count(*) FROM users WHERE is_active),
			(SELECT count(*) FROM cars),
			(SELECT count(*) FROM drivers),
			(SELECT count(*) FROM bookings),
			(SELECT count(*) FROM payments),
			(SELECT count(*) FROM bookings WHERE booking_type = 'RIDE'   AND status IN ('CONFIRMED', 'ONGOING')),
			(SELECT count(*) FROM bookings WHERE booking_type = 'RENTAL' AND status IN ('CONFIRMED', 'ONGOING')),
			(SELECT count(*) FROM cars WHERE status = 'AVAILABLE'),
			(SELECT count(*) FROM drivers WHERE status = 'AVAILABLE'),
			(SELECT COALESCE(sum(amount), 0) FROM payments WHERE status = 'PAID')
	`

	var o dashboard.Overview
	err := r.db.QueryRow(ctx, query).Scan(
		&o.TotalUsers, &o.TotalCars, &o.TotalDrivers, &o.TotalBookings, &o.TotalPayments,
		&o.ActiveRides, &o.ActiveRentals, &o.AvailableCars, &o.AvailableDrivers, &o.Revenue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard overview: %w", err)
	}
	return &o, nil
}

var _ dashboard.Repository = (*DashboardRepository)(nil)
