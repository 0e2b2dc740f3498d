package request

type CreateShowtimeRequest struct {
	MovieID   string  `json:"movie_id" validate:"required,uuid4"`
	ScreenID  string  `json:"screen_id" validate:"required,uuid4"`
	StartTime string  `json:"start_time" validate:"required"`
	BasePrice float64 `json:"base_price" validate:"required,gt=0"`
}

type UpdatePricingRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}
