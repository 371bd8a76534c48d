package postgres

import (
	"context"
	"errors"
	"fmt"

	"fleetride-service/internal/domain/payment"
	xerrors "fleetride-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentCols = `id, booking_id, amount, method, status, transaction_id, paid_at, created_at`

func scanPayment(row pgx.Row, p *payment.Payment) error {
	return row.Scan(
		&p.ID, &p.BookingID, &p.Amount, &p.Method, &p.Status,
		&p.TransactionID, &p.PaidAt, &p.CreatedAt,
	)
}

// Create records a charge against a booking. The booking_id unique
// constraint enforces one payment per booking at the database level.
func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	query := `
		INSERT INTO payments (booking_id, amount, method, status, transaction_id, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		p.BookingID, p.Amount, p.Method, p.Status, p.TransactionID, p.PaidAt,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id int64) (*payment.Payment, error) {
	var p payment.Payment
	err := scanPayment(r.db.QueryRow(ctx,
		`SELECT `+paymentCols+` FROM payments WHERE id = $1`, id), &p)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.NotFoundf("payment %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}
	return &p, nil
}

func (r *PaymentRepository) FindByBooking(ctx context.Context, bookingID int64) (*payment.Payment, error) {
	var p payment.Payment
	err := scanPayment(r.db.QueryRow(ctx,
		`SELECT `+paymentCols+` FROM payments WHERE booking_id = $1`, bookingID), &p)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.NotFoundf("payment for booking %d not found", bookingID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find payment by booking: %w", err)
	}
	return &p, nil
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID int64) ([]payment.Payment, error) {
	query := `
		SELECT p.id, p.booking_id, p.amount, p.method, p.status,
		       p.transaction_id, p.paid_at, p.created_at
		FROM payments p
		JOIN bookings b ON b.id = p.booking_id
		WHERE b.user_id = $1
		ORDER BY p.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []payment.Payment
	for rows.Next() {
		var p payment.Payment
		if err := scanPayment(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id int64, status payment.Status) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE payments
		SET status = $2,
		    paid_at = CASE WHEN $2 = 'PAID' AND paid_at IS NULL THEN now() ELSE paid_at END
		WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return xerrors.NotFoundf("payment %d not found", id)
	}
	return nil
}

var _ payment.Repository = (*PaymentRepository)(nil)
