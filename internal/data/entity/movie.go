package entity

import "time"

type Movie struct {
	Base
	Title       string     `db:"title"`
	Synopsis    string     `db:"synopsis"`
	PosterURL   *string    `db:"poster_url"`
	BackdropURL *string    `db:"backdrop_url"`
	Genre       string     `db:"genre"` // JSON array, e.g. ["Action","Sci-Fi"]
	Language    string     `db:"language"`
	Duration    int        `db:"duration"` // minutes
	Cast        *string    `db:"movie_cast"`
	Rating      *float64   `db:"rating"`
	ReleaseDate *time.Time `db:"release_date"`
	Featured    bool       `db:"featured"`
}
