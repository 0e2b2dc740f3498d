package entity

import "fmt"

type SeatTier string

const (
	SeatTierRegular SeatTier = "regular"
	SeatTierVIP     SeatTier = "vip"
)

// Seat identifies one seat within a showtime's seat map. It is a value
// object: identity is (row, number) within a showtime, tier is a static
// attribute assigned by the tier rule. Seats are never stored on their own;
// the map is derived from the screen layout.
type Seat struct {
	Row    string   `json:"row"`
	Number int      `json:"number"`
	Tier   SeatTier `json:"tier"`
}

// Label returns the display identity, e.g. "A5".
func (s Seat) Label() string {
	return fmt.Sprintf("%s%d", s.Row, s.Number)
}

// TierRule maps a row letter to a seat tier.
type TierRule func(row string) SeatTier

// DefaultTierRule marks the first two rows (A and B) as vip.
func DefaultTierRule(row string) SeatTier {
	if row <= "B" {
		return SeatTierVIP
	}
	return SeatTierRegular
}

// TierPrice returns the per-seat price for a tier given the showtime's
// current price. VIP seats cost vipFactor times the regular price.
func TierPrice(tier SeatTier, currentPrice, vipFactor float64) float64 {
	if tier == SeatTierVIP {
		return currentPrice * vipFactor
	}
	return currentPrice
}

// GenerateSeatMap builds the seat grid for a screen layout. Deterministic:
// the same inputs always produce the same seats, in row-major order. Rows
// are lettered A..Z; layouts never exceed 26 rows, extra rows are dropped.
func GenerateSeatMap(rows, seatsPerRow int, rule TierRule) []Seat {
	if rule == nil {
		rule = DefaultTierRule
	}
	if rows > 26 {
		rows = 26
	}
	seats := make([]Seat, 0, rows*seatsPerRow)
	for r := 0; r < rows; r++ {
		row := string(rune('A' + r))
		for n := 1; n <= seatsPerRow; n++ {
			seats = append(seats, Seat{Row: row, Number: n, Tier: rule(row)})
		}
	}
	return seats
}
