// internal/api/router.go
package api

import (
	"net/http"
)

// RegisterRoutes mounts every endpoint on mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /health", h.health)

	// Session
	mux.HandleFunc("GET /session", h.getSession)
	mux.HandleFunc("POST /session/filter", h.applyFilter)
	mux.HandleFunc("POST /session/answers", h.selectChoice)
	mux.HandleFunc("POST /session/submit", h.submitSession)
	mux.HandleFunc("POST /session/resample", h.resampleSession)

	// History
	mux.HandleFunc("GET /history", h.getHistory)
	mux.HandleFunc("POST /history/reset", h.resetHistory)

	// Results
	mux.HandleFunc("GET /results", h.listResults)
	mux.HandleFunc("GET /results/export.xlsx", h.exportResults)
	mux.HandleFunc("GET /results/{sessionID}", h.getResult)

	// Events
	mux.HandleFunc("GET /events", h.streamEvents)
}

type HealthResponse struct {
	Status          string `json:"status" example:"ok"`
	HistoryDegraded bool   `json:"history_degraded"`
}

// health reports liveness.
// @Summary      Health check
// @Tags         System
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:          "ok",
		HistoryDegraded: h.history.Degraded(),
	})
}
