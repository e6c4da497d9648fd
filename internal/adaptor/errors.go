package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps the store's error taxonomy onto HTTP statuses.
// Services wrap the sentinels with %w, so errors.Is sees through the
// user-facing message.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, entity.ErrDuplicateKey):
		log.Warn(operation+" failed - duplicate", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, entity.ErrInvalidTransition):
		log.Warn(operation+" failed - invalid state", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error())

	case errors.Is(err, entity.ErrIncompleteTicketing):
		log.Warn(operation+" failed - incomplete ticketing", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error())

	case errors.Is(err, entity.ErrIntegrityViolation):
		log.Warn(operation+" failed - integrity violation", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"),
		strings.Contains(err.Error(), "required"):
		log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case strings.Contains(err.Error(), "credentials"),
		strings.Contains(err.Error(), "deactivated"):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
