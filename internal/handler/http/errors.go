package http

import (
	"errors"
	"net/http"

	"github.com/mobilegw/go-sync-gateway/internal/backend"
	"github.com/mobilegw/go-sync-gateway/internal/backend/combined"
	"github.com/mobilegw/go-sync-gateway/internal/backend/remote"
	"github.com/mobilegw/go-sync-gateway/internal/store"
)

var errMissingSession = errors.New("handler: no session in request context")

// statusFromError maps engine, backend and store failures onto HTTP
// status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, errMissingSession), errors.Is(err, remote.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, backend.ErrNotFound), errors.Is(err, store.ErrStateNotFound):
		return http.StatusNotFound
	case errors.Is(err, combined.ErrMalformedID),
		errors.Is(err, combined.ErrCrossBackendMove),
		errors.Is(err, combined.ErrFolderTypeNotAllowed):
		return http.StatusBadRequest
	case errors.Is(err, backend.ErrNotSupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
