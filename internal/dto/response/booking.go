package response

import (
	"time"

	"cinemax/internal/data/entity"
)

type BookingResponse struct {
	ID            string               `json:"id"`
	Reference     string               `json:"reference"`
	UserID        string               `json:"user_id"`
	ShowtimeID    string               `json:"showtime_id"`
	HoldGroupID   string               `json:"hold_group_id"`
	TotalSeats    int                  `json:"total_seats"`
	TotalAmount   float64              `json:"total_amount"`
	PaymentStatus entity.PaymentStatus `json:"payment_status"`
	PaymentMethod *string              `json:"payment_method,omitempty"`
	Seats         []HeldSeatResponse   `json:"seats,omitempty"`
	ExpiresAt     time.Time            `json:"expires_at"`
	CreatedAt     time.Time            `json:"created_at"`
}

type AnalyticsResponse struct {
	TotalRevenue     float64 `json:"total_revenue"`
	PaidBookings     int64   `json:"paid_bookings"`
	AverageOccupancy float64 `json:"average_occupancy"`
}

// Helper converters
func BookingToResponse(booking *entity.Booking, holds []*entity.Hold) BookingResponse {
	resp := BookingResponse{
		ID:            booking.ID.String(),
		Reference:     booking.Reference,
		UserID:        booking.UserID.String(),
		ShowtimeID:    booking.ShowtimeID.String(),
		HoldGroupID:   booking.HoldGroupID.String(),
		TotalSeats:    booking.TotalSeats,
		TotalAmount:   booking.TotalAmount,
		PaymentStatus: booking.PaymentStatus,
		PaymentMethod: booking.PaymentMethod,
		ExpiresAt:     booking.ExpiresAt,
		CreatedAt:     booking.CreatedAt,
	}

	for _, h := range holds {
		resp.Seats = append(resp.Seats, HeldSeatResponse{
			Row:       h.SeatRow,
			Number:    h.SeatNumber,
			Label:     h.Seat().Label(),
			Tier:      h.SeatTier,
			UnitPrice: h.UnitPrice,
		})
	}

	return resp
}
