package usecase

import (
	"time"

	"cinemax/internal/data/repository"
	"cinemax/pkg/utils"

	"go.uber.org/zap"
)

// Clock supplies the current instant. Injected so hold expiry and booking
// transitions are testable without sleeping.
type Clock func() time.Time

type Service struct {
	Auth     AuthService
	Movie    MovieService
	Theater  TheaterService
	Showtime ShowtimeService
	Hold     HoldService
	Booking  BookingService
	Pricing  PricingService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	clock := Clock(time.Now)
	oracle := NewMLOracle()

	return &Service{
		Auth:     NewAuthService(repo, config, log, clock),
		Movie:    NewMovieService(repo, log),
		Theater:  NewTheaterService(repo, log),
		Showtime: NewShowtimeService(repo, config, log, clock),
		Hold:     NewHoldService(repo, config, log, clock),
		Booking:  NewBookingService(repo, log, clock),
		Pricing:  NewPricingService(repo, oracle, log, clock),
	}
}
