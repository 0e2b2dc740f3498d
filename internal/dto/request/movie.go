package request

type CreateMovieRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=255"`
	Synopsis    string   `json:"synopsis" validate:"required"`
	PosterURL   *string  `json:"poster_url,omitempty" validate:"omitempty,url"`
	BackdropURL *string  `json:"backdrop_url,omitempty" validate:"omitempty,url"`
	Genre       string   `json:"genre" validate:"required"`
	Language    string   `json:"language" validate:"required"`
	Duration    int      `json:"duration" validate:"required,min=1"`
	Cast        *string  `json:"cast,omitempty"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,min=0,max=10"`
	ReleaseDate *string  `json:"release_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Featured    bool     `json:"featured"`
}

type UpdateMovieRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=255"`
	Synopsis    string   `json:"synopsis" validate:"required"`
	PosterURL   *string  `json:"poster_url,omitempty" validate:"omitempty,url"`
	BackdropURL *string  `json:"backdrop_url,omitempty" validate:"omitempty,url"`
	Genre       string   `json:"genre" validate:"required"`
	Language    string   `json:"language" validate:"required"`
	Duration    int      `json:"duration" validate:"required,min=1"`
	Cast        *string  `json:"cast,omitempty"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,min=0,max=10"`
	ReleaseDate *string  `json:"release_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Featured    bool     `json:"featured"`
}
