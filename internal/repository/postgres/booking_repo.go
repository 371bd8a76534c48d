package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fleetride-service/internal/domain/booking"
	"fleetride-service/internal/domain/car"
	"fleetride-service/internal/domain/driver"
	"fleetride-service/internal/domain/user"
	xerrors "fleetride-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create persists the booking header and its car entries in one
// transaction so a partially written booking can never be observed.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	pickup, err := json.Marshal(b.PickupLocation)
	if err != nil {
		return fmt.Errorf("failed to encode pickup location: %w", err)
	}
	var dropoff []byte
	if b.DropoffLocation != nil {
		dropoff, err = json.Marshal(b.DropoffLocation)
		if err != nil {
			return fmt.Errorf("failed to encode dropoff location: %w", err)
		}
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO bookings (user_id, booking_type, status, start_time, end_time,
		                      pickup_location, dropoff_location, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRow(ctx, query,
		b.UserID, b.Type, b.Status, b.StartTime, b.EndTime, pickup, dropoff, b.TotalAmount,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	for i := range b.Cars {
		entry := &b.Cars[i]
		err = tx.QueryRow(ctx, `
			INSERT INTO booking_cars (booking_id, car_id, driver_id, status)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, b.ID, entry.CarID, entry.DriverID, entry.Status).Scan(&entry.ID)
		if err != nil {
			return fmt.Errorf("failed to create booking car entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit booking: %w", err)
	}
	return nil
}

const bookingCols = `b.id, b.user_id, b.booking_type, b.status, b.start_time, b.end_time,
	b.pickup_location, b.dropoff_location, b.total_amount, b.created_at, b.updated_at`

func scanBooking(row pgx.Row, b *booking.Booking, u *user.Info) error {
	var pickup, dropoff []byte
	err := row.Scan(
		&b.ID, &b.UserID, &b.Type, &b.Status, &b.StartTime, &b.EndTime,
		&pickup, &dropoff, &b.TotalAmount, &b.CreatedAt, &b.UpdatedAt,
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone,
	)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(pickup, &b.PickupLocation); err != nil {
		return fmt.Errorf("failed to decode pickup location: %w", err)
	}
	if len(dropoff) > 0 {
		var loc booking.Location
		if err := json.Unmarshal(dropoff, &loc); err != nil {
			return fmt.Errorf("failed to decode dropoff location: %w", err)
		}
		b.DropoffLocation = &loc
	}
	b.User = u
	return nil
}

// FindByID loads a booking with its user and every car entry populated
// with car and, when assigned, driver details.
func (r *BookingRepository) FindByID(ctx context.Context, id int64) (*booking.Booking, error) {
	query := `
		SELECT ` + bookingCols + `, u.id, u.first_name, u.last_name, u.email, u.phone
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		WHERE b.id = $1
	`

	var (
		b booking.Booking
		u user.Info
	)
	err := scanBooking(r.db.QueryRow(ctx, query, id), &b, &u)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.NotFoundf("booking %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	if b.Cars, err = r.loadEntries(ctx, b.ID); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) loadEntries(ctx context.Context, bookingID int64) ([]booking.CarEntry, error) {
	query := `
		SELECT bc.id, bc.car_id, bc.driver_id, bc.status,
		       c.model, c.license_plate, c.capacity,
		       d.license_number, du.id, du.first_name, du.last_name, du.phone
		FROM booking_cars bc
		JOIN cars c ON c.id = bc.car_id
		LEFT JOIN drivers d ON d.id = bc.driver_id
		LEFT JOIN users du ON du.id = d.user_id
		WHERE bc.booking_id = $1
		ORDER BY bc.id
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking cars: %w", err)
	}
	defer rows.Close()

	var entries []booking.CarEntry
	for rows.Next() {
		var (
			e                          booking.CarEntry
			carInfo                    car.Info
			license                    *string
			duID                       *int64
			duFirst, duLast, duPhone   *string
		)
		err := rows.Scan(
			&e.ID, &e.CarID, &e.DriverID, &e.Status,
			&carInfo.Model, &carInfo.LicensePlate, &carInfo.Capacity,
			&license, &duID, &duFirst, &duLast, &duPhone,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking car: %w", err)
		}
		carInfo.ID = e.CarID
		e.Car = &carInfo
		if e.DriverID != nil && license != nil {
			info := &driver.Info{ID: *e.DriverID, LicenseNumber: *license}
			if duID != nil {
				info.User = &user.Info{ID: *duID}
				if duFirst != nil {
					info.User.FirstName = *duFirst
				}
				if duLast != nil {
					info.User.LastName = *duLast
				}
				if duPhone != nil {
					info.User.Phone = *duPhone
				}
			}
			e.Driver = info
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListByUser returns a user's bookings newest first, optionally
// restricted to one booking type.
func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, bookingType booking.Type) ([]booking.Booking, error) {
	query := `
		SELECT ` + bookingCols + `, u.id, u.first_name, u.last_name, u.email, u.phone
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		WHERE b.user_id = $1
	`
	args := []interface{}{userID}

	if bookingType != "" {
		args = append(args, bookingType)
		query += ` AND b.booking_type = $2`
	}
	query += ` ORDER BY b.created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []booking.Booking
	for rows.Next() {
		var (
			b booking.Booking
			u user.Info
		)
		if err := scanBooking(rows, &b, &u); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range bookings {
		if bookings[i].Cars, err = r.loadEntries(ctx, bookings[i].ID); err != nil {
			return nil, err
		}
	}
	return bookings, nil
}

// UpdateStatusIf is the lifecycle compare-and-swap. The booking moves
// from `from` to `to` only if the stored status still matches, and the
// car entries mirror the new status in the same transaction. stampEnd
// records end_time when the booking has none (completion and mid-trip
// cancellation).
func (r *BookingRepository) UpdateStatusIf(ctx context.Context, id int64, from, to booking.Status, stampEnd bool) (bool, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `
		UPDATE bookings
		SET status = $3,
		    updated_at = now(),
		    end_time = CASE WHEN $4 AND end_time IS NULL THEN now() ELSE end_time END
		WHERE id = $1 AND status = $2
	`, id, from, to, stampEnd)
	if err != nil {
		return false, fmt.Errorf("failed to update booking status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return false, nil
	}

	if _, err := tx.Exec(ctx,
		`UPDATE booking_cars SET status = $2 WHERE booking_id = $1`, id, to); err != nil {
		return false, fmt.Errorf("failed to update booking car statuses: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit status update: %w", err)
	}
	return true, nil
}

var _ booking.Repository = (*BookingRepository)(nil)
