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

type HoldHandler struct {
	service usecase.HoldService
	log     *zap.Logger
}

func NewHoldHandler(service usecase.HoldService, log *zap.Logger) *HoldHandler {
	return &HoldHandler{
		service: service,
		log:     log.With(zap.String("handler", "hold")),
	}
}

// CreateHold handles POST /api/holds (protected)
func (h *HoldHandler) CreateHold(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateHoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	hold, err := h.service.RequestHold(r.Context(), userID.String(), &req)
	if err != nil {
		respondError(w, h.log, err, "create hold")
		return
	}

	utils.ResponseCreated(w, "success", hold)
}

// ReleaseHold handles DELETE /api/holds/{groupId} (protected)
func (h *HoldHandler) ReleaseHold(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	groupID := chi.URLParam(r, "groupId")
	if groupID == "" {
		utils.ResponseBadRequest(w, "Hold group ID is required", nil)
		return
	}

	if err := h.service.ReleaseHold(r.Context(), userID.String(), groupID); err != nil {
		respondError(w, h.log, err, "release hold")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
