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

type TheaterHandler struct {
	service usecase.TheaterService
	log     *zap.Logger
}

func NewTheaterHandler(service usecase.TheaterService, log *zap.Logger) *TheaterHandler {
	return &TheaterHandler{
		service: service,
		log:     log.With(zap.String("handler", "theater")),
	}
}

// GetTheaters handles GET /api/theaters (public)
func (h *TheaterHandler) GetTheaters(w http.ResponseWriter, r *http.Request) {
	theaters, err := h.service.GetTheaters(r.Context())
	if err != nil {
		respondError(w, h.log, err, "get theaters")
		return
	}

	utils.ResponseSuccess(w, "success", theaters)
}

// GetTheaterByID handles GET /api/theaters/{id} (public)
func (h *TheaterHandler) GetTheaterByID(w http.ResponseWriter, r *http.Request) {
	theaterID := chi.URLParam(r, "id")
	if theaterID == "" {
		utils.ResponseBadRequest(w, "Theater ID is required", nil)
		return
	}

	theater, err := h.service.GetTheaterByID(r.Context(), theaterID)
	if err != nil {
		respondError(w, h.log, err, "get theater by ID")
		return
	}

	utils.ResponseSuccess(w, "success", theater)
}

// GetScreens handles GET /api/screens/theater/{id} (public)
func (h *TheaterHandler) GetScreens(w http.ResponseWriter, r *http.Request) {
	theaterID := chi.URLParam(r, "id")
	if theaterID == "" {
		utils.ResponseBadRequest(w, "Theater ID is required", nil)
		return
	}

	screens, err := h.service.GetScreens(r.Context(), theaterID)
	if err != nil {
		respondError(w, h.log, err, "get screens")
		return
	}

	utils.ResponseSuccess(w, "success", screens)
}

// CreateTheater handles POST /api/theaters (admin only)
func (h *TheaterHandler) CreateTheater(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTheaterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	theater, err := h.service.CreateTheater(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create theater")
		return
	}

	utils.ResponseCreated(w, "success", theater)
}

// CreateScreen handles POST /api/screens (admin only)
func (h *TheaterHandler) CreateScreen(w http.ResponseWriter, r *http.Request) {
	var req request.CreateScreenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	screen, err := h.service.CreateScreen(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create screen")
		return
	}

	utils.ResponseCreated(w, "success", screen)
}
