// internal/domain/driver/repository.go
package driver

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, d *Driver) error
	FindByID(ctx context.Context, id int64) (*Driver, error)
	List(ctx context.Context, filters *ListFilters) ([]Driver, error)
	Update(ctx context.Context, id int64, d *Driver) error
	SetOffline(ctx context.Context, id int64) error
	ExistsByUserOrLicense(ctx context.Context, userID int64, license string) (bool, error)

	// ClaimAvailable atomically selects one driver that is AVAILABLE and
	// holds no car, flips it to ON_RIDE with the given car, and returns
	// it. Returns nil, nil when no driver can be claimed.
	ClaimAvailable(ctx context.Context, carID int64) (*Driver, error)

	// Release returns an ON_RIDE driver to AVAILABLE and clears the held
	// car. Idempotent for drivers already released or OFFLINE.
	Release(ctx context.Context, id int64) error

	// ReleaseOrphaned releases every driver stuck in ON_RIDE that no
	// live booking references and whose last write is older than
	// olderThan. The age guard keeps the sweep off drivers claimed by
	// an allocation that has not inserted its booking row yet.
	ReleaseOrphaned(ctx context.Context, olderThan time.Duration) (int64, error)
}
