package entity

import (
	"time"

	"github.com/google/uuid"
)

type HoldState string

const (
	HoldStateActive   HoldState = "active"
	HoldStateConsumed HoldState = "consumed"
	HoldStateExpired  HoldState = "expired"
	HoldStateReleased HoldState = "released"
)

// Hold is a time-boxed exclusive claim on one seat of one showtime. All
// holds created by a single request share a GroupID and a common expiry.
// At most one active hold may exist per seat at any instant.
type Hold struct {
	BaseSimple
	GroupID    uuid.UUID `db:"group_id"`
	ShowtimeID uuid.UUID `db:"showtime_id"`
	HolderID   string    `db:"holder_id"`
	SeatRow    string    `db:"seat_row"`
	SeatNumber int       `db:"seat_number"`
	SeatTier   SeatTier  `db:"seat_tier"`
	UnitPrice  float64   `db:"unit_price"` // tier price snapshot taken at hold time
	State      HoldState `db:"state"`
	ExpiresAt  time.Time `db:"expires_at"`
}

// Seat returns the seat value this hold claims.
func (h *Hold) Seat() Seat {
	return Seat{Row: h.SeatRow, Number: h.SeatNumber, Tier: h.SeatTier}
}

// ActiveAt reports whether the hold still blocks its seat at the given
// instant. An active hold past its expiry no longer blocks anything.
func (h *Hold) ActiveAt(now time.Time) bool {
	return h.State == HoldStateActive && h.ExpiresAt.After(now)
}
