package source

import (
	"context"
	"encoding/json"
	"os"

	"github.com/questcycle/backend/internal/domain/category"
	"github.com/questcycle/backend/internal/domain/questionbank"
)

// FileSource reads the collection from a local JSON array on every fetch,
// so edits to the file are picked up without a restart.
type FileSource struct {
	path string
}

var _ Source = (*FileSource)(nil)

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) FetchQuestions(ctx context.Context, p category.Predicates) ([]questionbank.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Reason: "cancelled", Wrapped: err}
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &TransportError{Reason: "failed to read question file", Wrapped: err}
	}

	var questions []questionbank.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, &TransportError{Reason: "malformed question file", Wrapped: err}
	}
	if err := questionbank.ValidateAll(questions); err != nil {
		return nil, &TransportError{Reason: "malformed question file", Wrapped: err}
	}

	return questions, nil
}

// StaticSource serves a fixed collection. Used by tests and the simulation.
type StaticSource []questionbank.Question

func (s StaticSource) FetchQuestions(ctx context.Context, p category.Predicates) ([]questionbank.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Reason: "cancelled", Wrapped: err}
	}
	return append([]questionbank.Question(nil), s...), nil
}
