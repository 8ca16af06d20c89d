package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/questcycle/backend/internal/domain/category"
	"github.com/questcycle/backend/internal/domain/questionbank"
	"github.com/questcycle/backend/internal/store"
)

// ── Request / Response types ────────────────────────────────────────────────

type ResultAnswer struct {
	QuestionID    questionbank.ID        `json:"question_id" swaggertype:"string"`
	CorrectChoice questionbank.ChoiceID  `json:"correct_choice" swaggertype:"string"`
	Selected      *questionbank.ChoiceID `json:"selected_choice,omitempty" swaggertype:"string"`
	IsCorrect     bool                   `json:"is_correct"`
}

type ResultResponse struct {
	SessionID  string              `json:"session_id"`
	Predicates category.Predicates `json:"predicates"`
	CreatedAt  time.Time           `json:"created_at"`
	GradedAt   time.Time           `json:"graded_at"`
	Correct    int                 `json:"correct" example:"3"`
	Total      int                 `json:"total" example:"4"`
	Percentage float64             `json:"percentage" example:"75"`
	Answers    []ResultAnswer      `json:"answers"`
}

func toResultResponse(r store.StoredResult) ResultResponse {
	resp := ResultResponse{
		SessionID:  r.SessionID,
		Predicates: r.Predicates,
		CreatedAt:  r.CreatedAt,
		GradedAt:   r.GradedAt,
		Correct:    r.Correct,
		Total:      r.Total,
		Percentage: r.Percentage,
		Answers:    make([]ResultAnswer, len(r.Questions)),
	}
	for i, a := range r.Questions {
		resp.Answers[i] = ResultAnswer(a)
	}
	return resp
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listResults lists graded sessions.
// @Summary      Graded sessions
// @Description  Newest first. limit <= 0 or absent returns every session.
// @Tags         Results
// @Produce      json
// @Param        limit  query     int  false  "Maximum sessions"
// @Success      200    {array}   ResultResponse
// @Failure      400    {object}  map[string]string
// @Router       /results [get]
func (h *Handler) listResults(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	results, err := h.results.ListResults(r.Context(), limit)
	if h.handleStoreError(w, err, "results") {
		return
	}

	resp := make([]ResultResponse, len(results))
	for i, res := range results {
		resp[i] = toResultResponse(res)
	}
	respondJSON(w, http.StatusOK, resp)
}

// getResult returns one graded session.
// @Summary      Graded session
// @Tags         Results
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  ResultResponse
// @Failure      404        {object}  map[string]string
// @Router       /results/{sessionID} [get]
func (h *Handler) getResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.results.GetResult(r.Context(), r.PathValue("sessionID"))
	if h.handleStoreError(w, err, "result") {
		return
	}
	respondJSON(w, http.StatusOK, toResultResponse(*result))
}

// exportResults writes graded sessions as an Excel workbook.
// @Summary      Export results
// @Description  One sheet of sessions and one of per-question answers.
// @Tags         Results
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        limit  query  int  false  "Maximum sessions"
// @Success      200
// @Router       /results/export.xlsx [get]
func (h *Handler) exportResults(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	results, err := h.results.ListResults(r.Context(), limit)
	if h.handleStoreError(w, err, "results") {
		return
	}

	f, err := buildWorkbook(results)
	if err != nil {
		h.logger.Error("failed to build workbook", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create Excel file")
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("questcycle-results-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(w); err != nil {
		h.logger.Error("failed to write workbook", "error", err)
	}
}

const (
	sessionsSheet = "Sessions"
	answersSheet  = "Answers"
)

func buildWorkbook(results []store.StoredResult) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sessionsSheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(answersSheet); err != nil {
		f.Close()
		return nil, err
	}

	sessions, err := f.NewStreamWriter(sessionsSheet)
	if err != nil {
		f.Close()
		return nil, err
	}
	answers, err := f.NewStreamWriter(answersSheet)
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := sessions.SetRow("A1", []any{"Session", "Graded at", "Source", "Role", "Level", "Correct", "Total", "Percentage"}); err != nil {
		f.Close()
		return nil, err
	}
	if err := answers.SetRow("A1", []any{"Session", "Position", "Question", "Selected", "Correct choice", "Correct"}); err != nil {
		f.Close()
		return nil, err
	}

	answerRow := 2
	for i, res := range results {
		row := []any{
			res.SessionID,
			res.GradedAt.Format(time.RFC3339),
			sanitizeForExcel(res.Predicates.Source),
			sanitizeForExcel(res.Predicates.Role),
			sanitizeForExcel(res.Predicates.Level),
			res.Correct,
			res.Total,
			res.Percentage,
		}
		if err := sessions.SetRow(fmt.Sprintf("A%d", i+2), row); err != nil {
			f.Close()
			return nil, err
		}

		for pos, a := range res.Questions {
			selected := ""
			if a.Selected != nil {
				selected = string(*a.Selected)
			}
			row := []any{
				res.SessionID,
				pos + 1,
				sanitizeForExcel(string(a.QuestionID)),
				sanitizeForExcel(selected),
				sanitizeForExcel(string(a.CorrectChoice)),
				a.IsCorrect,
			}
			if err := answers.SetRow(fmt.Sprintf("A%d", answerRow), row); err != nil {
				f.Close()
				return nil, err
			}
			answerRow++
		}
	}

	if err := sessions.Flush(); err != nil {
		f.Close()
		return nil, err
	}
	if err := answers.Flush(); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// sanitizeForExcel keeps cell text from being evaluated as a formula.
func sanitizeForExcel(s string) string {
	if s != "" && strings.ContainsRune("=+-@", rune(s[0])) {
		return "'" + s
	}
	return s
}

// parseLimit reads the optional limit query parameter.
func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "limit must be an integer")
		return 0, false
	}
	return limit, true
}
