package practicesession

import (
	"time"

	"github.com/questcycle/backend/internal/domain/category"
	"github.com/questcycle/backend/internal/domain/questionbank"
	"github.com/questcycle/backend/internal/id"
)

// PracticeSession is one drawn batch of questions. It is not modified after
// creation; a new request replaces it.
type PracticeSession struct {
	ID         string
	Predicates category.Predicates
	Questions  []questionbank.Question
	CreatedAt  time.Time
}

// New wraps sampled questions in a session with a fresh ID.
func New(predicates category.Predicates, questions []questionbank.Question) *PracticeSession {
	return &PracticeSession{
		ID:         id.GenerateID(),
		Predicates: predicates,
		Questions:  append([]questionbank.Question(nil), questions...),
		CreatedAt:  time.Now().UTC(),
	}
}

// Question returns the session question with the given ID.
func (s *PracticeSession) Question(qid questionbank.ID) (questionbank.Question, bool) {
	for _, q := range s.Questions {
		if q.ID == qid {
			return q, true
		}
	}
	return questionbank.Question{}, false
}

// QuestionIDs lists the session's questions in presentation order.
func (s *PracticeSession) QuestionIDs() []questionbank.ID {
	ids := make([]questionbank.ID, len(s.Questions))
	for i, q := range s.Questions {
		ids[i] = q.ID
	}
	return ids
}

func (s *PracticeSession) Len() int {
	return len(s.Questions)
}

func (s *PracticeSession) IsEmpty() bool {
	return len(s.Questions) == 0
}
