package api

import (
	"net/http"

	"github.com/questcycle/backend/internal/domain/category"
	"github.com/questcycle/backend/internal/domain/questionbank"
	"github.com/questcycle/backend/internal/grader"
)

// ── Request / Response types ────────────────────────────────────────────────

type ApplyFilterRequest struct {
	Role   string `json:"cargo" example:"Técnico em Informática"`
	Level  string `json:"nivel" example:"Médio"`
	Source string `json:"banca" example:"ITAME"`
}

type SelectChoiceRequest struct {
	QuestionID questionbank.ID       `json:"question_id" swaggertype:"string" example:"214"`
	ChoiceID   questionbank.ChoiceID `json:"choice_id" swaggertype:"string" example:"2"`
}

type SelectChoiceResponse struct {
	Status string `json:"status" example:"recorded"`
}

type SubmitResponse struct {
	SessionID string         `json:"session_id"`
	Result    *grader.Result `json:"result"`
	Warning   string         `json:"warning,omitempty"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// getSession returns the current session view.
// @Summary      Current session
// @Description  Status, questions, recorded answers, grade and pool statistics.
// @Tags         Session
// @Produce      json
// @Success      200  {object}  service.View
// @Router       /session [get]
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.sessions.Current())
}

// applyFilter fetches the pool for the given predicates and samples a session.
// @Summary      Apply a filter
// @Description  Empty fields match any value. A newer request supersedes one still in flight.
// @Tags         Session
// @Accept       json
// @Produce      json
// @Param        body  body      ApplyFilterRequest  true  "Filter predicates"
// @Success      200   {object}  service.View
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string  "superseded"
// @Failure      502   {object}  map[string]string  "question source unavailable"
// @Router       /session/filter [post]
func (h *Handler) applyFilter(w http.ResponseWriter, r *http.Request) {
	var req ApplyFilterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.sessions.ApplyFilter(r.Context(), category.Predicates{
		Role:   req.Role,
		Level:  req.Level,
		Source: req.Source,
	})
	if h.handleSessionError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// selectChoice records an answer.
// @Summary      Answer a question
// @Tags         Session
// @Accept       json
// @Produce      json
// @Param        body  body      SelectChoiceRequest  true  "Answer"
// @Success      200   {object}  SelectChoiceResponse
// @Failure      400   {object}  map[string]string  "unknown question or choice"
// @Failure      409   {object}  map[string]string  "no session or already graded"
// @Router       /session/answers [post]
func (h *Handler) selectChoice(w http.ResponseWriter, r *http.Request) {
	var req SelectChoiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.QuestionID == "" || req.ChoiceID == "" {
		respondError(w, http.StatusBadRequest, "question_id and choice_id are required")
		return
	}

	if h.handleSessionError(w, h.sessions.SelectChoice(req.QuestionID, req.ChoiceID)) {
		return
	}
	respondJSON(w, http.StatusOK, SelectChoiceResponse{Status: "recorded"})
}

// submitSession grades the session.
// @Summary      Submit for grading
// @Description  Every question must be answered. Graded questions are added to the history.
// @Tags         Session
// @Produce      json
// @Success      200  {object}  SubmitResponse
// @Failure      409  {object}  map[string]string  "incomplete, no session or already graded"
// @Router       /session/submit [post]
func (h *Handler) submitSession(w http.ResponseWriter, r *http.Request) {
	result, err := h.sessions.Submit(r.Context())
	if h.handleSessionError(w, err) {
		return
	}

	view := h.sessions.Current()
	respondJSON(w, http.StatusOK, SubmitResponse{
		SessionID: view.SessionID,
		Result:    result,
		Warning:   view.Warning,
	})
}

// resampleSession draws a new session from the cached pool.
// @Summary      New session, same filter
// @Tags         Session
// @Produce      json
// @Success      200  {object}  service.View
// @Failure      409  {object}  map[string]string  "no filter applied"
// @Router       /session/resample [post]
func (h *Handler) resampleSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.Resample(r.Context())
	if h.handleSessionError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, view)
}
