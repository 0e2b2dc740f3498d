package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"cinemax/internal/data/entity"
	"cinemax/pkg/utils"

	"go.uber.org/zap"
)

// respondError maps domain errors to HTTP status codes. Sentinel errors come
// first; the string checks cover validation and parse failures that carry no
// sentinel.
func respondError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, entity.ErrSeatUnavailable):
		log.Warn(operation+" failed - seat unavailable", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, entity.ErrHoldExpired):
		log.Warn(operation+" failed - hold expired", zap.Error(err))
		utils.ResponseGone(w, errMsg)

	case errors.Is(err, entity.ErrInvalidState):
		log.Warn(operation+" failed - invalid state", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, entity.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"),
		strings.Contains(errMsg, "duplicate seat"):
		log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "already registered"),
		strings.Contains(errMsg, "already taken"):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
