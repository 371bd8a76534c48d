package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"fleetride-service/internal/domain/driver"
	"fleetride-service/internal/domain/user"
	xerrors "fleetride-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DriverRepository struct {
	db *pgxpool.Pool
}

func NewDriverRepository(db *pgxpool.Pool) *DriverRepository {
	return &DriverRepository{db: db}
}

const driverCols = `d.id, d.user_id, d.license_number, d.status, d.current_car_id, d.created_at, d.updated_at`

// scanDriverRow scans a driver joined with its user account.
func scanDriverRow(row pgx.Row, d *driver.Driver) error {
	var u user.Info
	err := row.Scan(
		&d.ID, &d.UserID, &d.LicenseNumber, &d.Status, &d.CurrentCarID,
		&d.CreatedAt, &d.UpdatedAt,
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone,
	)
	if err != nil {
		return err
	}
	d.User = &u
	return nil
}

func (r *DriverRepository) Create(ctx context.Context, d *driver.Driver) error {
	query := `
		INSERT INTO drivers (user_id, license_number, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, d.UserID, d.LicenseNumber, d.Status).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create driver: %w", err)
	}

	return nil
}

func (r *DriverRepository) FindByID(ctx context.Context, id int64) (*driver.Driver, error) {
	query := `
		SELECT ` + driverCols + `, u.id, u.first_name, u.last_name, u.email, u.phone
		FROM drivers d
		JOIN users u ON u.id = d.user_id
		WHERE d.id = $1
	`

	var d driver.Driver
	err := scanDriverRow(r.db.QueryRow(ctx, query, id), &d)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.NotFoundf("driver %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find driver: %w", err)
	}
	return &d, nil
}

func (r *DriverRepository) List(ctx context.Context, filters *driver.ListFilters) ([]driver.Driver, error) {
	query := `
		SELECT ` + driverCols + `, u.id, u.first_name, u.last_name, u.email, u.phone
		FROM drivers d
		JOIN users u ON u.id = d.user_id
	`
	args := []interface{}{}

	if filters != nil && filters.Status != "" {
		args = append(args, filters.Status)
		query += ` WHERE d.status = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY d.id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	defer rows.Close()

	var drivers []driver.Driver
	for rows.Next() {
		var d driver.Driver
		if err := scanDriverRow(rows, &d); err != nil {
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

func (r *DriverRepository) Update(ctx context.Context, id int64, d *driver.Driver) error {
	query := `
		UPDATE drivers
		SET license_number = $2, status = $3, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query, id, d.LicenseNumber, d.Status).Scan(&d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.NotFoundf("driver %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("failed to update driver: %w", err)
	}

	return nil
}

func (r *DriverRepository) SetOffline(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE drivers SET status = 'OFFLINE', current_car_id = NULL, updated_at = now()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to set driver offline: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return xerrors.NotFoundf("driver %d not found", id)
	}
	return nil
}

func (r *DriverRepository) ExistsByUserOrLicense(ctx context.Context, userID int64, license string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM drivers WHERE user_id = $1 OR license_number = $2)`,
		userID, license,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check driver existence: %w", err)
	}
	return exists, nil
}

// ClaimAvailable picks one free driver and binds it to the car in a
// single statement. FOR UPDATE SKIP LOCKED keeps concurrent allocators
// from fighting over the same row; each claim sees a distinct driver.
func (r *DriverRepository) ClaimAvailable(ctx context.Context, carID int64) (*driver.Driver, error) {
	query := `
		UPDATE drivers d SET status = 'ON_RIDE', current_car_id = $1, updated_at = now()
		WHERE d.id = (
			SELECT id FROM drivers
			WHERE status = 'AVAILABLE' AND current_car_id IS NULL
			ORDER BY id
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING d.id, d.user_id, d.license_number, d.status, d.current_car_id, d.created_at, d.updated_at
	`

	var d driver.Driver
	err := r.db.QueryRow(ctx, query, carID).Scan(
		&d.ID, &d.UserID, &d.LicenseNumber, &d.Status, &d.CurrentCarID,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to claim driver: %w", err)
	}
	return &d, nil
}

// Release frees an ON_RIDE driver. Drivers already AVAILABLE or OFFLINE
// are left untouched, so repeated releases are safe.
func (r *DriverRepository) Release(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE drivers SET status = 'AVAILABLE', current_car_id = NULL, updated_at = now()
		WHERE id = $1 AND status = 'ON_RIDE'
	`, id)
	if err != nil {
		return fmt.Errorf("failed to release driver: %w", err)
	}
	return nil
}

// ReleaseOrphaned repairs drivers left ON_RIDE by interrupted
// cancellations. The updated_at cutoff protects drivers mid-allocation,
// claimed but not yet tied to a booking row.
func (r *DriverRepository) ReleaseOrphaned(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	ct, err := r.db.Exec(ctx, `
		UPDATE drivers SET status = 'AVAILABLE', current_car_id = NULL, updated_at = now()
		WHERE status = 'ON_RIDE'
		  AND updated_at < $1
		  AND NOT EXISTS (
			SELECT 1
			FROM booking_cars bc
			JOIN bookings b ON b.id = bc.booking_id
			WHERE bc.driver_id = drivers.id
			  AND b.status IN ('PENDING', 'CONFIRMED', 'ONGOING')
		  )
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to release orphaned drivers: %w", err)
	}
	return ct.RowsAffected(), nil
}

var _ driver.Repository = (*DriverRepository)(nil)
