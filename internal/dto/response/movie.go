package response

import (
	"time"

	"cinemax/internal/data/entity"
)

type MovieResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Synopsis    string     `json:"synopsis"`
	PosterURL   *string    `json:"poster_url,omitempty"`
	BackdropURL *string    `json:"backdrop_url,omitempty"`
	Genre       string     `json:"genre"`
	Language    string     `json:"language"`
	Duration    int        `json:"duration"`
	Cast        *string    `json:"cast,omitempty"`
	Rating      *float64   `json:"rating,omitempty"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	Featured    bool       `json:"featured"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Synopsis:    movie.Synopsis,
		PosterURL:   movie.PosterURL,
		BackdropURL: movie.BackdropURL,
		Genre:       movie.Genre,
		Language:    movie.Language,
		Duration:    movie.Duration,
		Cast:        movie.Cast,
		Rating:      movie.Rating,
		ReleaseDate: movie.ReleaseDate,
		Featured:    movie.Featured,
		CreatedAt:   movie.CreatedAt,
	}
}

func MoviesToResponse(movies []*entity.Movie) []MovieResponse {
	out := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, MovieToResponse(m))
	}
	return out
}
