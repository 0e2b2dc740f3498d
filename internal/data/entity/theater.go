package entity

import "github.com/google/uuid"

type Theater struct {
	Base
	Name     string `db:"name"`
	Location string `db:"location"`
	City     string `db:"city"`
}

// Screen describes a hall's fixed layout. The seat map for any showtime in
// this screen is generated from Rows and SeatsPerRow, never stored.
type Screen struct {
	Base
	TheaterID   uuid.UUID `db:"theater_id"`
	Name        string    `db:"name"` // e.g. "Screen 1", "IMAX"
	Capacity    int       `db:"capacity"`
	Rows        int       `db:"rows"`
	SeatsPerRow int       `db:"seats_per_row"`
}
