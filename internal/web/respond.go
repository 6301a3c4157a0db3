package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/la-rentals/fleet/internal/core"
	"github.com/la-rentals/fleet/internal/importer"
	"github.com/la-rentals/fleet/internal/logging"
	"github.com/la-rentals/fleet/internal/store"
)

// ErrorResponse is the JSON shape of every API error.
type ErrorResponse struct {
	Error  string `json:"error"`
	Action string `json:"action,omitempty"`
	Code   string `json:"code"`
}

// respondError logs the technical error with its request id and answers
// with the mapped user-facing message.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	userMsg := core.MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	respondJSON(w, status, ErrorResponse{
		Error:  userMsg.Message,
		Action: userMsg.Action,
		Code:   userMsg.Code,
	})
}

// statusFor maps sentinel errors to HTTP status codes. Anything unmapped
// is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrCategoryNotEmpty):
		return http.StatusConflict
	case errors.Is(err, importer.ErrMissingColumns):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errBadRequest tags client-side input errors produced by the handlers.
var errBadRequest = errors.New("bad request")

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// headers are already sent, nothing left to do but log
		slog.Error("json encode failed", "error", err)
	}
}
