// internal/domain/car/repository.go
package car

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, c *Car) error
	FindByID(ctx context.Context, id int64) (*Car, error)
	List(ctx context.Context, filters *ListFilters) ([]Car, error)
	Update(ctx context.Context, id int64, c *Car) error
	SetStatus(ctx context.Context, id int64, status Status) error
	ExistsByPlate(ctx context.Context, plate string) (bool, error)

	// Reserve flips the car to target only if it is currently AVAILABLE
	// and returns the reserved car. A nil car with nil error means the
	// car exists but the conditional write did not match.
	Reserve(ctx context.Context, id int64, target Status) (*Car, error)

	// Release returns a reserved car to AVAILABLE. Idempotent: a car
	// already released (or in MAINTENANCE) is left untouched.
	Release(ctx context.Context, id int64) error

	// ReleaseOrphaned releases every car stuck in ON_RIDE or RENTED that
	// no live booking references and whose last write is older than
	// olderThan, returning how many rows were repaired. The age guard
	// keeps the sweep off cars reserved by an allocation that has not
	// inserted its booking row yet.
	ReleaseOrphaned(ctx context.Context, olderThan time.Duration) (int64, error)
}
