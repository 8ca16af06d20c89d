package store

import (
	"errors"
	"time"

	"github.com/questcycle/backend/internal/domain/category"
	"github.com/questcycle/backend/internal/domain/questionbank"
)

var (
	ErrNotFound = errors.New("not found")
)

// StoredResult is an archived, graded session.
type StoredResult struct {
	SessionID  string
	Predicates category.Predicates
	CreatedAt  time.Time
	GradedAt   time.Time
	Correct    int
	Total      int
	Percentage float64
	Questions  []StoredAnswer
}

// StoredAnswer is one graded question of an archived session.
type StoredAnswer struct {
	QuestionID    questionbank.ID
	CorrectChoice questionbank.ChoiceID
	Selected      *questionbank.ChoiceID
	IsCorrect     bool
}
