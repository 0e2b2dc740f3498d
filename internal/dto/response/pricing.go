package response

import (
	"time"

	"cinemax/internal/data/entity"
)

type PredictionResponse struct {
	ShowtimeID       string               `json:"showtime_id"`
	RecommendedPrice float64              `json:"recommended_price"`
	Source           entity.PricingSource `json:"source"`
	PredictedTickets int                  `json:"predicted_tickets"`
	Confidence       float64              `json:"confidence"`
	ModelVersion     string               `json:"model_version"`
}

type PricingHistoryResponse struct {
	ID                 string               `json:"id"`
	ShowtimeID         string               `json:"showtime_id"`
	BasePrice          float64              `json:"base_price"`
	MLRecommendedPrice *float64             `json:"ml_recommended_price,omitempty"`
	FinalPrice         float64              `json:"final_price"`
	Source             entity.PricingSource `json:"source"`
	AdminOverride      bool                 `json:"admin_override"`
	MLModelVersion     *string              `json:"ml_model_version,omitempty"`
	OccupancyRate      *float64             `json:"occupancy_rate,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
}

// Helper converters
func PredictionToResponse(quote *entity.PriceQuote) PredictionResponse {
	return PredictionResponse{
		ShowtimeID:       quote.ShowtimeID.String(),
		RecommendedPrice: quote.Price,
		Source:           quote.Source,
		PredictedTickets: quote.PredictedTickets,
		Confidence:       quote.Confidence,
		ModelVersion:     quote.ModelVersion,
	}
}

func PricingHistoryToResponse(record *entity.PricingHistory) PricingHistoryResponse {
	return PricingHistoryResponse{
		ID:                 record.ID.String(),
		ShowtimeID:         record.ShowtimeID.String(),
		BasePrice:          record.BasePrice,
		MLRecommendedPrice: record.MLRecommendedPrice,
		FinalPrice:         record.FinalPrice,
		Source:             record.Source,
		AdminOverride:      record.AdminOverride,
		MLModelVersion:     record.MLModelVersion,
		OccupancyRate:      record.OccupancyRate,
		CreatedAt:          record.CreatedAt,
	}
}
