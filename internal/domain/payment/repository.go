// internal/domain/payment/repository.go
package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	FindByID(ctx context.Context, id int64) (*Payment, error)
	FindByBooking(ctx context.Context, bookingID int64) (*Payment, error)
	ListByUser(ctx context.Context, userID int64) ([]Payment, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
}
