package grader

import (
	"context"
	"errors"
	"math"

	practicesession "github.com/questcycle/backend/internal/domain/practice_session"
	"github.com/questcycle/backend/internal/domain/questionbank"
)

// ErrIncompleteSubmission is returned when a session question has no answer.
var ErrIncompleteSubmission = errors.New("every question must be answered before grading")

// HistoryRecorder marks questions as answered.
type HistoryRecorder interface {
	Add(ctx context.Context, id questionbank.ID) error
}

// Detail is the grading outcome for one question.
type Detail struct {
	QuestionID    questionbank.ID        `json:"question_id"`
	CorrectChoice questionbank.ChoiceID  `json:"correct_choice"`
	Selected      *questionbank.ChoiceID `json:"selected_choice,omitempty"`
	IsCorrect     bool                   `json:"is_correct"`
}

// Result summarises a graded session. It is not modified after Grade returns.
type Result struct {
	Correct    int      `json:"correct"`
	Total      int      `json:"total"`
	Percentage float64  `json:"percentage"`
	Details    []Detail `json:"details"`
}

// Grader scores completed sessions and records them in the answer history.
type Grader struct {
	history HistoryRecorder
}

func New(history HistoryRecorder) *Grader {
	return &Grader{history: history}
}

// Grade scores session against answers. Nothing is recorded when an answer
// is missing. Every question is added to history regardless of correctness.
//
// A non-nil Result may come back together with an error wrapping
// history.ErrStorageUnavailable: the grade is valid, but history is no
// longer durable.
func (g *Grader) Grade(ctx context.Context, session *practicesession.PracticeSession, answers map[questionbank.ID]questionbank.ChoiceID) (*Result, error) {
	for _, q := range session.Questions {
		if _, ok := answers[q.ID]; !ok {
			return nil, ErrIncompleteSubmission
		}
	}

	var warning error
	for _, q := range session.Questions {
		if err := g.history.Add(ctx, q.ID); err != nil && warning == nil {
			warning = err
		}
	}

	return Score(session.Questions, answers), warning
}

// Score compares answers with the correct choices. Missing answers count as
// wrong and are reported with a nil Selected.
func Score(questions []questionbank.Question, answers map[questionbank.ID]questionbank.ChoiceID) *Result {
	result := &Result{
		Total:   len(questions),
		Details: make([]Detail, 0, len(questions)),
	}

	for _, q := range questions {
		detail := Detail{
			QuestionID:    q.ID,
			CorrectChoice: q.CorrectChoice,
		}
		if selected, ok := answers[q.ID]; ok {
			selected := selected
			detail.Selected = &selected
			detail.IsCorrect = selected == q.CorrectChoice
		}
		if detail.IsCorrect {
			result.Correct++
		}
		result.Details = append(result.Details, detail)
	}

	result.Percentage = Percentage(result.Correct, result.Total)
	return result
}

// Percentage returns correct/total*100 rounded half-up to two decimals.
// An empty session scores 0.
func Percentage(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)*10000/float64(total)) / 100
}
