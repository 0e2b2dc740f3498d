package adaptor

import (
	"cinemax/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Movie    *MovieHandler
	Theater  *TheaterHandler
	Showtime *ShowtimeHandler
	Hold     *HoldHandler
	Booking  *BookingHandler
	Pricing  *PricingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		Movie:    NewMovieHandler(service.Movie, log),
		Theater:  NewTheaterHandler(service.Theater, log),
		Showtime: NewShowtimeHandler(service.Showtime, log),
		Hold:     NewHoldHandler(service.Hold, log),
		Booking:  NewBookingHandler(service.Booking, log),
		Pricing:  NewPricingHandler(service.Pricing, log),
	}
}
