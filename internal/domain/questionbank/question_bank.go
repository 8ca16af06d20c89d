package questionbank

import "errors"

var (
	ErrEmptyID      = errors.New("question id cannot be empty")
	ErrDuplicateID  = errors.New("duplicate question id")
	ErrNoChoices    = errors.New("question has no choices")
	ErrBadCorrectID = errors.New("correct choice is not one of the question's choices")
)

// QuestionBank is an ordered, indexed pool of questions.
type QuestionBank struct {
	Questions []Question
	index     map[ID]int
}

// New indexes questions by ID. Later duplicates of an ID are ignored so the
// first occurrence wins.
func New(questions []Question) *QuestionBank {
	qb := &QuestionBank{
		Questions: make([]Question, 0, len(questions)),
		index:     make(map[ID]int, len(questions)),
	}
	for _, q := range questions {
		if _, dup := qb.index[q.ID]; dup {
			continue
		}
		qb.index[q.ID] = len(qb.Questions)
		qb.Questions = append(qb.Questions, q)
	}
	return qb
}

// Get returns the question with the given ID.
func (qb *QuestionBank) Get(id ID) (Question, bool) {
	i, ok := qb.index[id]
	if !ok {
		return Question{}, false
	}
	return qb.Questions[i], true
}

func (qb *QuestionBank) Contains(id ID) bool {
	_, ok := qb.index[id]
	return ok
}

func (qb *QuestionBank) Len() int {
	return len(qb.Questions)
}

// Validate checks a single question record for structural problems.
func Validate(q Question) error {
	if q.ID == "" {
		return ErrEmptyID
	}
	if len(q.Choices) == 0 {
		return ErrNoChoices
	}
	if !q.HasChoice(q.CorrectChoice) {
		return ErrBadCorrectID
	}
	return nil
}

// ValidateAll checks every question and rejects duplicate IDs.
func ValidateAll(questions []Question) error {
	seen := make(map[ID]struct{}, len(questions))
	for _, q := range questions {
		if err := Validate(q); err != nil {
			return &InvalidQuestionError{ID: q.ID, Wrapped: err}
		}
		if _, dup := seen[q.ID]; dup {
			return &InvalidQuestionError{ID: q.ID, Wrapped: ErrDuplicateID}
		}
		seen[q.ID] = struct{}{}
	}
	return nil
}

// InvalidQuestionError names the offending question.
type InvalidQuestionError struct {
	ID      ID
	Wrapped error
}

func (e *InvalidQuestionError) Error() string {
	return "question " + string(e.ID) + ": " + e.Wrapped.Error()
}

func (e *InvalidQuestionError) Unwrap() error {
	return e.Wrapped
}
