package source

import (
	"context"
	"fmt"

	"github.com/questcycle/backend/internal/domain/category"
	"github.com/questcycle/backend/internal/domain/questionbank"
)

// Source fetches the raw question collection for a filter. Implementations
// may narrow server-side; callers still apply category.Filter.
type Source interface {
	FetchQuestions(ctx context.Context, p category.Predicates) ([]questionbank.Question, error)
}

// Pinger is implemented by sources backed by a remote host.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TransportError is returned when the question source is unreachable or
// its response cannot be used. It is always safe to retry.
type TransportError struct {
	Reason  string
	Wrapped error
}

func (e *TransportError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("question source: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("question source: %s", e.Reason)
}

func (e *TransportError) Unwrap() error {
	return e.Wrapped
}
