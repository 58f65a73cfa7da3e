package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/krishisethu/backend/internal/services"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// RespondServiceError maps a service error to its HTTP status.
// Unknown errors become an opaque 500 so internals never reach the client.
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		h.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrPhoneNumberExists):
		h.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		h.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		h.RespondError(w, http.StatusUnauthorized, "invalid or expired refresh token")
	case errors.Is(err, services.ErrForbidden):
		h.RespondError(w, http.StatusForbidden, "you do not have access to this crop")
	case errors.Is(err, services.ErrCropNotFound):
		h.RespondError(w, http.StatusNotFound, "crop not found")
	default:
		h.Logger.Error("unexpected service error", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
