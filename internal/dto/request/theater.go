package request

type CreateTheaterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Location string `json:"location" validate:"required"`
	City     string `json:"city" validate:"required"`
}

type CreateScreenRequest struct {
	TheaterID   string `json:"theater_id" validate:"required,uuid4"`
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Rows        int    `json:"rows" validate:"required,min=1,max=26"`
	SeatsPerRow int    `json:"seats_per_row" validate:"required,min=1,max=50"`
}
