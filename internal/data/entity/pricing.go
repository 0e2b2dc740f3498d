package entity

import "github.com/google/uuid"

// PriceQuote is the pricing oracle's answer for one showtime: a price and
// its provenance, plus whatever the model reports about its own output.
type PriceQuote struct {
	ShowtimeID       uuid.UUID
	Price            float64
	Source           PricingSource
	PredictedTickets int
	Confidence       float64
	ModelVersion     string
}

// PricingHistory records every accepted price change for a showtime, both
// ML recommendations and admin overrides.
type PricingHistory struct {
	BaseSimple
	ShowtimeID         uuid.UUID     `db:"showtime_id"`
	BasePrice          float64       `db:"base_price"`
	MLRecommendedPrice *float64      `db:"ml_recommended_price"`
	FinalPrice         float64       `db:"final_price"`
	Source             PricingSource `db:"source"`
	AdminOverride      bool          `db:"admin_override"`
	AdminUserID        *uuid.UUID    `db:"admin_user_id"`
	MLModelVersion     *string       `db:"ml_model_version"`
	OccupancyRate      *float64      `db:"occupancy_rate"`
}
