package api

import (
	"net/http"

	"github.com/questcycle/backend/internal/domain/history"
)

type HistoryResponse struct {
	Entries  []history.Entry `json:"entries"`
	Size     int             `json:"size"`
	Limit    int             `json:"limit"`
	Degraded bool            `json:"degraded"`
}

// getHistory lists answered questions.
// @Summary      Answer history
// @Description  Most recently answered questions, oldest first.
// @Tags         History
// @Produce      json
// @Success      200  {object}  HistoryResponse
// @Router       /history [get]
func (h *Handler) getHistory(w http.ResponseWriter, r *http.Request) {
	entries := h.history.Entries()
	respondJSON(w, http.StatusOK, HistoryResponse{
		Entries:  entries,
		Size:     len(entries),
		Limit:    h.history.Limit(),
		Degraded: h.history.Degraded(),
	})
}

// resetHistory clears the history and resamples the active filter.
// @Summary      Reset history
// @Tags         History
// @Produce      json
// @Success      200  {object}  service.View
// @Router       /history/reset [post]
func (h *Handler) resetHistory(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.ResetHistory(r.Context())
	if h.handleSessionError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, view)
}
