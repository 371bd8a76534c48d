package payment

import (
	"time"

	"fleetride-service/internal/domain/booking"
)

type Method string

const (
	MethodCash   Method = "CASH"
	MethodCard   Method = "CARD"
	MethodWallet Method = "WALLET"
	MethodUPI    Method = "UPI"
)

// Valid reports whether m is a known payment method.
func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodWallet, MethodUPI:
		return true
	}
	return false
}

type Status string

const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
	StatusFailed  Status = "FAILED"
)

// Valid reports whether s is a known payment status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusFailed:
		return true
	}
	return false
}

// Payment is a recorded charge against a booking. One payment per
// booking; no gateway is involved, records only.
type Payment struct {
	ID            int64      `json:"id" db:"id"`
	BookingID     int64      `json:"booking_id" db:"booking_id"`
	Amount        float64    `json:"amount" db:"amount"`
	Method        Method     `json:"method" db:"method"`
	Status        Status     `json:"status" db:"status"`
	TransactionID string     `json:"transaction_id" db:"transaction_id"`
	PaidAt        *time.Time `json:"paid_at,omitempty" db:"paid_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`

	Booking *booking.Booking `json:"booking,omitempty" db:"-"`
}
