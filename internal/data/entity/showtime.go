package entity

import (
	"time"

	"github.com/google/uuid"
)

type PricingSource string

const (
	PricingSourceBase     PricingSource = "base"
	PricingSourceML       PricingSource = "ml"
	PricingSourceOverride PricingSource = "override"
)

// Showtime carries the displayed price and its provenance. CurrentPrice is
// owned by the pricing-update process; bookings read it at hold time only,
// so later price mutations never drift into an existing hold or booking.
type Showtime struct {
	Base
	MovieID       uuid.UUID     `db:"movie_id"`
	ScreenID      uuid.UUID     `db:"screen_id"`
	StartTime     time.Time     `db:"start_time"`
	BasePrice     float64       `db:"base_price"`
	CurrentPrice  float64       `db:"current_price"`
	PricingSource PricingSource `db:"pricing_source"`
	OccupiedSeats int           `db:"occupied_seats"`
}
