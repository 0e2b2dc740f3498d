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

type ShowtimeHandler struct {
	service usecase.ShowtimeService
	log     *zap.Logger
}

func NewShowtimeHandler(service usecase.ShowtimeService, log *zap.Logger) *ShowtimeHandler {
	return &ShowtimeHandler{
		service: service,
		log:     log.With(zap.String("handler", "showtime")),
	}
}

// GetUpcoming handles GET /api/showtimes (public)
func (h *ShowtimeHandler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	showtimes, err := h.service.GetUpcoming(r.Context())
	if err != nil {
		respondError(w, h.log, err, "get upcoming showtimes")
		return
	}

	utils.ResponseSuccess(w, "success", showtimes)
}

// GetByMovie handles GET /api/showtimes/movie/{id} (public)
func (h *ShowtimeHandler) GetByMovie(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")
	if movieID == "" {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return
	}

	showtimes, err := h.service.GetByMovie(r.Context(), movieID)
	if err != nil {
		respondError(w, h.log, err, "get showtimes by movie")
		return
	}

	utils.ResponseSuccess(w, "success", showtimes)
}

// GetShowtimeDetail handles GET /api/showtimes/{id} (public)
func (h *ShowtimeHandler) GetShowtimeDetail(w http.ResponseWriter, r *http.Request) {
	showtimeID := chi.URLParam(r, "id")
	if showtimeID == "" {
		utils.ResponseBadRequest(w, "Showtime ID is required", nil)
		return
	}

	detail, err := h.service.GetShowtimeDetail(r.Context(), showtimeID)
	if err != nil {
		respondError(w, h.log, err, "get showtime detail")
		return
	}

	utils.ResponseSuccess(w, "success", detail)
}

// CreateShowtime handles POST /api/showtimes (admin only)
func (h *ShowtimeHandler) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var req request.CreateShowtimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	showtime, err := h.service.CreateShowtime(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create showtime")
		return
	}

	utils.ResponseCreated(w, "success", showtime)
}
