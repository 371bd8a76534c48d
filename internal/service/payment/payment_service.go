// internal/service/payment/payment_service.go
package payment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"fleetride-service/internal/domain/booking"
	"fleetride-service/internal/domain/payment"
	"fleetride-service/internal/domain/user"
	xerrors "fleetride-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// PaymentService records charges against bookings. It never touches
// booking status or the car and driver pools.
type PaymentService struct {
	paymentRepo payment.Repository
	bookingRepo booking.Repository
	logger      *zap.Logger
}

func NewPaymentService(paymentRepo payment.Repository, bookingRepo booking.Repository, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Create records a payment for a booking. One payment per booking; the
// requester must own the booking or be an admin.
func (s *PaymentService) Create(ctx context.Context, requesterID int64, requesterRole user.Role, req *payment.CreateRequest) (*payment.Payment, error) {
	if !req.Method.Valid() {
		return nil, xerrors.Validationf("unknown payment method %q", req.Method)
	}

	b, err := s.bookingRepo.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != requesterID && requesterRole != user.RoleAdmin {
		return nil, xerrors.Forbiddenf("booking %d does not belong to you", req.BookingID)
	}

	if existing, err := s.paymentRepo.FindByBooking(ctx, req.BookingID); err == nil && existing != nil {
		return nil, xerrors.Conflictf("booking %d already has a payment", req.BookingID)
	} else if err != nil && !xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing payment: %w", err)
	}

	amount := req.Amount
	if amount == 0 {
		amount = b.TotalAmount
	}

	now := time.Now()
	p := &payment.Payment{
		BookingID:     req.BookingID,
		Amount:        amount,
		Method:        req.Method,
		Status:        payment.StatusPending,
		TransactionID: newTransactionRef(now),
	}
	if err := s.paymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.Int64("payment_id", p.ID),
		zap.Int64("booking_id", p.BookingID),
		zap.Float64("amount", p.Amount))
	return p, nil
}

// Get returns one payment; non-admins may only read their own.
func (s *PaymentService) Get(ctx context.Context, id, requesterID int64, requesterRole user.Role) (*payment.Payment, error) {
	p, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b, err := s.bookingRepo.FindByID(ctx, p.BookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != requesterID && requesterRole != user.RoleAdmin {
		return nil, xerrors.Forbiddenf("payment %d does not belong to you", id)
	}
	p.Booking = b
	return p, nil
}

// ListByUser returns a user's payments, newest first.
func (s *PaymentService) ListByUser(ctx context.Context, userID int64) ([]payment.Payment, error) {
	return s.paymentRepo.ListByUser(ctx, userID)
}

// UpdateStatus moves a payment to PAID or FAILED. PENDING is where
// payments start, not somewhere they return to.
func (s *PaymentService) UpdateStatus(ctx context.Context, id int64, target payment.Status) (*payment.Payment, error) {
	if !target.Valid() {
		return nil, xerrors.Validationf("unknown payment status %q", target)
	}

	p, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == target {
		return p, nil
	}
	if p.Status != payment.StatusPending || target == payment.StatusPending {
		return nil, xerrors.InvalidStatef("payment %d cannot move from %s to %s", id, p.Status, target)
	}

	if err := s.paymentRepo.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}
	return s.paymentRepo.FindByID(ctx, id)
}

// newTransactionRef mints a sortable unique reference for the charge.
func newTransactionRef(now time.Time) string {
	id := ulid.MustNew(ulid.Timestamp(now), rand.New(rand.NewSource(now.UnixNano())))
	return "TXN-" + id.String()
}
