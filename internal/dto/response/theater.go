package response

import "cinemax/internal/data/entity"

type TheaterResponse struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Location string           `json:"location"`
	City     string           `json:"city"`
	Screens  []ScreenResponse `json:"screens,omitempty"`
}

type ScreenResponse struct {
	ID          string `json:"id"`
	TheaterID   string `json:"theater_id"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	Rows        int    `json:"rows"`
	SeatsPerRow int    `json:"seats_per_row"`
}

// Helper converters
func TheaterToResponse(theater *entity.Theater) TheaterResponse {
	return TheaterResponse{
		ID:       theater.ID.String(),
		Name:     theater.Name,
		Location: theater.Location,
		City:     theater.City,
	}
}

func ScreenToResponse(screen *entity.Screen) ScreenResponse {
	return ScreenResponse{
		ID:          screen.ID.String(),
		TheaterID:   screen.TheaterID.String(),
		Name:        screen.Name,
		Capacity:    screen.Capacity,
		Rows:        screen.Rows,
		SeatsPerRow: screen.SeatsPerRow,
	}
}
