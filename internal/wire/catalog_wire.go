package wire

import (
	"cinemax/internal/adaptor"
	"cinemax/pkg/middleware"
	"cinemax/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	theaterHandler *adaptor.TheaterHandler,
	showtimeHandler *adaptor.ShowtimeHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// Public browse routes
	r.Get("/api/movies", movieHandler.GetMovies)
	r.Get("/api/movies/featured", movieHandler.GetFeaturedMovies)
	r.Get("/api/movies/{id}", movieHandler.GetMovieByID)

	r.Get("/api/theaters", theaterHandler.GetTheaters)
	r.Get("/api/theaters/{id}", theaterHandler.GetTheaterByID)
	r.Get("/api/screens/theater/{id}", theaterHandler.GetScreens)

	r.Get("/api/showtimes", showtimeHandler.GetUpcoming)
	r.Get("/api/showtimes/movie/{id}", showtimeHandler.GetByMovie)
	r.Get("/api/showtimes/{id}", showtimeHandler.GetShowtimeDetail)

	// Admin catalog management
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(config.JWT.Secret, log))
		r.Use(middleware.Admin(log))

		r.Post("/api/movies", movieHandler.CreateMovie)
		r.Put("/api/movies/{id}", movieHandler.UpdateMovie)
		r.Delete("/api/movies/{id}", movieHandler.DeleteMovie)

		r.Post("/api/theaters", theaterHandler.CreateTheater)
		r.Post("/api/screens", theaterHandler.CreateScreen)

		r.Post("/api/showtimes", showtimeHandler.CreateShowtime)
	})
}
