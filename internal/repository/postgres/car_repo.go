package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"fleetride-service/internal/domain/car"
	xerrors "fleetride-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CarRepository struct {
	db *pgxpool.Pool
}

func NewCarRepository(db *pgxpool.Pool) *CarRepository {
	return &CarRepository{db: db}
}

const carCols = `id, model, license_plate, capacity, price_per_km, price_per_day, status, created_at, updated_at`

func scanCar(row pgx.Row, c *car.Car) error {
	return row.Scan(
		&c.ID, &c.Model, &c.LicensePlate, &c.Capacity,
		&c.PricePerKm, &c.PricePerDay, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
}

// Create registers a new fleet vehicle.
func (r *CarRepository) Create(ctx context.Context, c *car.Car) error {
	query := `
		INSERT INTO cars (model, license_plate, capacity, price_per_km, price_per_day, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		c.Model, c.LicensePlate, c.Capacity, c.PricePerKm, c.PricePerDay, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create car: %w", err)
	}

	return nil
}

func (r *CarRepository) FindByID(ctx context.Context, id int64) (*car.Car, error) {
	var c car.Car
	err := scanCar(r.db.QueryRow(ctx, `SELECT `+carCols+` FROM cars WHERE id = $1`, id), &c)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.NotFoundf("car %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find car: %w", err)
	}
	return &c, nil
}

func (r *CarRepository) List(ctx context.Context, filters *car.ListFilters) ([]car.Car, error) {
	query := `SELECT ` + carCols + ` FROM cars WHERE 1=1`
	args := []interface{}{}

	if filters != nil && filters.Status != "" {
		args = append(args, filters.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filters != nil && filters.MinCapacity > 0 {
		args = append(args, filters.MinCapacity)
		query += ` AND capacity >= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}
	defer rows.Close()

	var cars []car.Car
	for rows.Next() {
		var c car.Car
		if err := scanCar(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan car: %w", err)
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}

func (r *CarRepository) Update(ctx context.Context, id int64, c *car.Car) error {
	query := `
		UPDATE cars
		SET model = $2, license_plate = $3, capacity = $4,
		    price_per_km = $5, price_per_day = $6, status = $7, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		id, c.Model, c.LicensePlate, c.Capacity, c.PricePerKm, c.PricePerDay, c.Status,
	).Scan(&c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.NotFoundf("car %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("failed to update car: %w", err)
	}

	return nil
}

func (r *CarRepository) SetStatus(ctx context.Context, id int64, status car.Status) error {
	ct, err := r.db.Exec(ctx,
		`UPDATE cars SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to set car status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return xerrors.NotFoundf("car %d not found", id)
	}
	return nil
}

func (r *CarRepository) ExistsByPlate(ctx context.Context, plate string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM cars WHERE license_plate = $1)`, plate).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check car plate: %w", err)
	}
	return exists, nil
}

// Reserve is the allocator's per-car gate. The WHERE clause makes the
// write conditional on the car still being AVAILABLE, so two concurrent
// bookings for the same car cannot both succeed.
func (r *CarRepository) Reserve(ctx context.Context, id int64, target car.Status) (*car.Car, error) {
	query := `
		UPDATE cars SET status = $2, updated_at = now()
		WHERE id = $1 AND status = 'AVAILABLE'
		RETURNING ` + carCols

	var c car.Car
	err := scanCar(r.db.QueryRow(ctx, query, id, target), &c)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reserve car: %w", err)
	}
	return &c, nil
}

// Release returns a busy car to the pool. Cars in MAINTENANCE or already
// AVAILABLE are left untouched, which makes repeated releases safe.
func (r *CarRepository) Release(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE cars SET status = 'AVAILABLE', updated_at = now()
		WHERE id = $1 AND status IN ('ON_RIDE', 'RENTED')
	`, id)
	if err != nil {
		return fmt.Errorf("failed to release car: %w", err)
	}
	return nil
}

// ReleaseOrphaned repairs cars left busy by interrupted cancellations.
// The updated_at cutoff protects cars mid-allocation, reserved but not
// yet tied to a booking row.
func (r *CarRepository) ReleaseOrphaned(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	ct, err := r.db.Exec(ctx, `
		UPDATE cars SET status = 'AVAILABLE', updated_at = now()
		WHERE status IN ('ON_RIDE', 'RENTED')
		  AND updated_at < $1
		  AND NOT EXISTS (
			SELECT 1
			FROM booking_cars bc
			JOIN bookings b ON b.id = bc.booking_id
			WHERE bc.car_id = cars.id
			  AND b.status IN ('PENDING', 'CONFIRMED', 'ONGOING')
		  )
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to release orphaned cars: %w", err)
	}
	return ct.RowsAffected(), nil
}

var _ car.Repository = (*CarRepository)(nil)
