package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusPaid       PaymentStatus = "paid"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRefunded   PaymentStatus = "refunded"
	PaymentStatusExpired    PaymentStatus = "expired"
)

// Booking is a reservation that progressed past holding. It references the
// hold group whose seats it consumed; TotalAmount is the sum of the per-seat
// price snapshots captured at hold time and is never client-supplied.
// Bookings are soft-terminated via status transitions, never deleted.
type Booking struct {
	Base
	Reference     string        `db:"booking_reference"`
	UserID        uuid.UUID     `db:"user_id"`
	ShowtimeID    uuid.UUID     `db:"showtime_id"`
	HoldGroupID   uuid.UUID     `db:"hold_group_id"`
	TotalSeats    int           `db:"total_seats"`
	TotalAmount   float64       `db:"total_amount"`
	PaymentStatus PaymentStatus `db:"payment_status"`
	PaymentMethod *string       `db:"payment_method"` // upi | card | cash
	ExpiresAt     time.Time     `db:"expires_at"`
}

// Settled reports whether the booking's seats-paid accounting is final.
func (b *Booking) Settled() bool {
	return b.PaymentStatus == PaymentStatusPaid || b.PaymentStatus == PaymentStatusRefunded
}
