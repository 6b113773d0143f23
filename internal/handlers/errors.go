package handlers

import (
	"errors"
	"net/http"

	"github.com/ayush-kumar-github/backendcodeecom/internal/models"
	pkghttp "github.com/ayush-kumar-github/backendcodeecom/pkg/http"
)

// writeServiceError maps a service sentinel error to an HTTP response with
// a safe message. Internals never reach the caller.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		pkghttp.WriteBadRequest(w, err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		pkghttp.WriteUnauthorized(w, "Authentication failed")
	case errors.Is(err, models.ErrForbidden):
		pkghttp.WriteForbidden(w, "Forbidden")
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, "Resource not found")
	case errors.Is(err, models.ErrConflict):
		pkghttp.WriteConflict(w, "Resource already exists")
	case errors.Is(err, models.ErrExternalService):
		pkghttp.WriteBadGateway(w, "Upstream service failure")
	default:
		pkghttp.WriteInternalError(w, "Internal server error")
	}
}
