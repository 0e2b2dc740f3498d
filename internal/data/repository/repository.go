package repository

import (
	"cinemax/pkg/database"

	"go.uber.org/zap"
)

// Repository bundles every data access interface behind one constructor so
// wiring stays in one place.
type Repository struct {
	User           UserRepository
	Movie          MovieRepository
	Theater        TheaterRepository
	Screen         ScreenRepository
	Showtime       ShowtimeRepository
	Hold           HoldRepository
	Booking        BookingRepository
	PricingHistory PricingHistoryRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:           NewUserRepository(db, log),
		Movie:          NewMovieRepository(db, log),
		Theater:        NewTheaterRepository(db, log),
		Screen:         NewScreenRepository(db, log),
		Showtime:       NewShowtimeRepository(db, log),
		Hold:           NewHoldRepository(db, log),
		Booking:        NewBookingRepository(db, log),
		PricingHistory: NewPricingHistoryRepository(db, log),
	}
}
