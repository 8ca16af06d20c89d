// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/questcycle/backend/internal/domain/history"
	"github.com/questcycle/backend/internal/grader"
	"github.com/questcycle/backend/internal/service"
	"github.com/questcycle/backend/internal/source"
	"github.com/questcycle/backend/internal/store"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Handler holds all dependencies needed by HTTP handlers.
type Handler struct {
	sessions *service.SessionController
	history  *history.Store
	results  *store.SQLiteStore
	logger   *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(sessions *service.SessionController, h *history.Store, results *store.SQLiteStore, logger *slog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		history:  h,
		results:  results,
		logger:   logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes {"error": msg}.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON decodes the request body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// handleStoreError checks for common store errors and writes the appropriate
// HTTP response. Returns true if an error was handled (caller should return).
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, entity+" not found")
		return true
	}
	h.logger.Error("store error", "error", err, "entity", entity)
	respondError(w, http.StatusInternalServerError, "internal error")
	return true
}

// handleSessionError maps controller errors to HTTP statuses. Returns true
// if an error was handled.
func (h *Handler) handleSessionError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}

	var transportErr *source.TransportError
	switch {
	case errors.As(err, &transportErr):
		respondError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, grader.ErrIncompleteSubmission),
		errors.Is(err, service.ErrNoSession),
		errors.Is(err, service.ErrNoFilter),
		errors.Is(err, service.ErrSessionGraded),
		errors.Is(err, service.ErrSuperseded):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUnknownQuestion),
		errors.Is(err, service.ErrUnknownChoice):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("session error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
