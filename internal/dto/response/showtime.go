package response

import (
	"time"

	"cinemax/internal/data/entity"
)

type ShowtimeResponse struct {
	ID            string               `json:"id"`
	MovieID       string               `json:"movie_id"`
	ScreenID      string               `json:"screen_id"`
	StartTime     time.Time            `json:"start_time"`
	BasePrice     float64              `json:"base_price"`
	CurrentPrice  float64              `json:"current_price"`
	PricingSource entity.PricingSource `json:"pricing_source"`
	OccupiedSeats int                  `json:"occupied_seats"`
}

// ShowtimeDetailResponse adds the full seat map with per-seat availability,
// built for the seat selection page.
type ShowtimeDetailResponse struct {
	ShowtimeResponse
	Movie       *MovieResponse  `json:"movie,omitempty"`
	Screen      *ScreenResponse `json:"screen,omitempty"`
	SeatMap     []SeatStatus    `json:"seat_map"`
	BookedSeats []string        `json:"booked_seats"`
}

type SeatStatus struct {
	Row       string          `json:"row"`
	Number    int             `json:"number"`
	Label     string          `json:"label"`
	Tier      entity.SeatTier `json:"tier"`
	Price     float64         `json:"price"`
	Available bool            `json:"available"`
}

// Helper converters
func ShowtimeToResponse(showtime *entity.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		ID:            showtime.ID.String(),
		MovieID:       showtime.MovieID.String(),
		ScreenID:      showtime.ScreenID.String(),
		StartTime:     showtime.StartTime,
		BasePrice:     showtime.BasePrice,
		CurrentPrice:  showtime.CurrentPrice,
		PricingSource: showtime.PricingSource,
		OccupiedSeats: showtime.OccupiedSeats,
	}
}

func ShowtimesToResponse(showtimes []*entity.Showtime) []ShowtimeResponse {
	out := make([]ShowtimeResponse, 0, len(showtimes))
	for _, s := range showtimes {
		out = append(out, ShowtimeToResponse(s))
	}
	return out
}
