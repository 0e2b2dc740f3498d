package adaptor

import (
	"encoding/json"
	"net/http"

	"cinemax/internal/dto/request"
	"cinemax/internal/usecase"
	"cinemax/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PricingHandler struct {
	service usecase.PricingService
	log     *zap.Logger
}

func NewPricingHandler(service usecase.PricingService, log *zap.Logger) *PricingHandler {
	return &PricingHandler{
		service: service,
		log:     log.With(zap.String("handler", "pricing")),
	}
}

// Predict handles POST /api/ml/predict (admin only)
func (h *PricingHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShowtimeID string `json:"showtime_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ShowtimeID == "" {
		utils.ResponseBadRequest(w, "Showtime ID is required", nil)
		return
	}

	prediction, err := h.service.Predict(r.Context(), req.ShowtimeID)
	if err != nil {
		respondError(w, h.log, err, "predict price")
		return
	}

	utils.ResponseSuccess(w, "success", prediction)
}

// GetPredictions handles GET /api/ml/predictions (admin only). With a
// showtime_id query parameter it returns the stored pricing history for that
// showtime; without it, live quotes for every upcoming showtime.
func (h *PricingHandler) GetPredictions(w http.ResponseWriter, r *http.Request) {
	if showtimeID := r.URL.Query().Get("showtime_id"); showtimeID != "" {
		history, err := h.service.GetHistory(r.Context(), showtimeID)
		if err != nil {
			respondError(w, h.log, err, "get pricing history")
			return
		}
		utils.ResponseSuccess(w, "success", history)
		return
	}

	predictions, err := h.service.GetPredictions(r.Context())
	if err != nil {
		respondError(w, h.log, err, "get predictions")
		return
	}

	utils.ResponseSuccess(w, "success", predictions)
}

// OverridePricing handles PATCH /api/showtimes/{id}/pricing (admin only)
func (h *PricingHandler) OverridePricing(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	showtimeID := chi.URLParam(r, "id")
	if showtimeID == "" {
		utils.ResponseBadRequest(w, "Showtime ID is required", nil)
		return
	}

	var req request.UpdatePricingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	showtime, err := h.service.OverridePricing(r.Context(), adminID.String(), showtimeID, &req)
	if err != nil {
		respondError(w, h.log, err, "override pricing")
		return
	}

	utils.ResponseSuccess(w, "success", showtime)
}
