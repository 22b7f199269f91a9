package httpd

import (
	"errors"
	"net/http"

	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/service"
	"github.com/MyungSeo-Kim/DatabaseDesignBackend/pkg/utils"
)

// handleServiceError maps service error kinds to statuses. Anything unrecognized is logged
// and answered with fallback so internals never reach the client.
func (h *Handler) handleServiceError(w http.ResponseWriter, err error, fallback string) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, service.ErrForbidden):
			status = http.StatusForbidden
		case errors.Is(err, service.ErrInvalidCredentials):
			status = http.StatusUnauthorized
		case errors.Is(err, service.ErrDuplicateKey), errors.Is(err, service.ErrConflict):
			status = http.StatusBadRequest
		}
		if status != http.StatusInternalServerError {
			utils.ErrorResponse(w, status, svcErr.Error())
			return
		}
	}

	h.logger.Error().Err(err).Msg(fallback)
	utils.ErrorResponse(w, http.StatusInternalServerError, fallback)
}
