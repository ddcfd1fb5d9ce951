package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/signalsfoundry/satlink-simulator/catalog"
	"github.com/signalsfoundry/satlink-simulator/core"
	"github.com/signalsfoundry/satlink-simulator/internal/logging"
	"github.com/signalsfoundry/satlink-simulator/internal/runs"
)

// ErrInvalidRequest is the package-level sentinel for malformed or
// unprocessable request bodies.
var ErrInvalidRequest = errors.New("invalid request")

// errorBody is the JSON shape every error response carries.
type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// httpStatus maps common simulator errors onto HTTP status codes.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, runs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, core.ErrConfiguration):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as JSON with the mapped status code, tagging the
// body with the request ID so clients can quote it back.
func writeError(ctx context.Context, w http.ResponseWriter, log logging.Logger, err error) {
	status := httpStatus(err)
	if log != nil && status == http.StatusInternalServerError {
		log.Error(ctx, "request failed", logging.String("error", err.Error()))
	}
	writeJSON(w, status, errorBody{
		Error:     err.Error(),
		RequestID: logging.RequestIDFromContext(ctx),
	})
}

// writeJSON renders v with the given status. Encoding failures after the
// header is written can only be noted, not recovered.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
