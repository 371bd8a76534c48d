// internal/domain/booking/repository.go
package booking

import "context"

type Repository interface {
	// Create persists the booking and its car entries atomically and
	// fills generated ids and timestamps.
	Create(ctx context.Context, b *Booking) error

	// FindByID loads a booking with populated user, car and driver
	// sub-records.
	FindByID(ctx context.Context, id int64) (*Booking, error)

	// ListByUser loads a user's bookings, optionally filtered by type,
	// newest first.
	ListByUser(ctx context.Context, userID int64, bookingType Type) ([]Booking, error)

	// UpdateStatusIf performs the compare-and-swap status write: the
	// status (and car-entry statuses) move to `to` only if the stored
	// status still equals `from`. stampEnd sets end_time to now when it
	// is absent. Returns whether the write matched.
	UpdateStatusIf(ctx context.Context, id int64, from, to Status, stampEnd bool) (bool, error)
}
