package response

import (
	"time"

	"cinemax/internal/data/entity"
)

type HeldSeatResponse struct {
	Row       string          `json:"row"`
	Number    int             `json:"number"`
	Label     string          `json:"label"`
	Tier      entity.SeatTier `json:"tier"`
	UnitPrice float64         `json:"unit_price"`
}

type HoldGroupResponse struct {
	GroupID     string             `json:"group_id"`
	ShowtimeID  string             `json:"showtime_id"`
	ExpiresAt   time.Time          `json:"expires_at"`
	Seats       []HeldSeatResponse `json:"seats"`
	TotalAmount float64            `json:"total_amount"`
}

// Helper converters
func HoldGroupToResponse(holds []*entity.Hold) *HoldGroupResponse {
	if len(holds) == 0 {
		return nil
	}

	resp := &HoldGroupResponse{
		GroupID:    holds[0].GroupID.String(),
		ShowtimeID: holds[0].ShowtimeID.String(),
		ExpiresAt:  holds[0].ExpiresAt,
		Seats:      make([]HeldSeatResponse, 0, len(holds)),
	}

	for _, h := range holds {
		resp.Seats = append(resp.Seats, HeldSeatResponse{
			Row:       h.SeatRow,
			Number:    h.SeatNumber,
			Label:     h.Seat().Label(),
			Tier:      h.SeatTier,
			UnitPrice: h.UnitPrice,
		})
		resp.TotalAmount += h.UnitPrice
	}

	return resp
}
