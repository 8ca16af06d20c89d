// simulation/simulation.go
package simulation

import (
	"context"
	"fmt"
	"io"
	"math/rand"

	"github.com/questcycle/backend/internal/domain/category"
	"github.com/questcycle/backend/internal/domain/questionbank"
	"github.com/questcycle/backend/internal/grader"
	"github.com/questcycle/backend/internal/service"
)

// Controller is the part of the session controller a simulated user needs.
type Controller interface {
	ApplyFilter(ctx context.Context, p category.Predicates) (*service.View, error)
	Resample(ctx context.Context) (*service.View, error)
	SelectChoice(qid questionbank.ID, cid questionbank.ChoiceID) error
	Submit(ctx context.Context) (*grader.Result, error)
}

// Run plays rounds sessions for p, answering every question with a random
// choice, and writes a line per session to out. It returns the results in
// order.
func Run(ctx context.Context, ctrl Controller, p category.Predicates, rounds int, rng *rand.Rand, out io.Writer) ([]*grader.Result, error) {
	if rounds <= 0 {
		rounds = 1
	}

	view, err := ctrl.ApplyFilter(ctx, p)
	if err != nil {
		return nil, err
	}

	results := make([]*grader.Result, 0, rounds)
	for round := 1; round <= rounds; round++ {
		if round > 1 {
			if view, err = ctrl.Resample(ctx); err != nil {
				return results, err
			}
		}

		if view.Status != service.StatusReady {
			fmt.Fprintf(out, "round %d: %s %s\n", round, view.Status, view.Message)
			return results, nil
		}
		if view.CycleReset {
			fmt.Fprintf(out, "round %d: every question answered, starting a new cycle\n", round)
		}

		for _, q := range view.Questions {
			if len(q.Choices) == 0 {
				return results, fmt.Errorf("question %s has no choices", q.ID)
			}
			choice := q.Choices[rng.Intn(len(q.Choices))]
			if err := ctrl.SelectChoice(q.ID, choice.ID); err != nil {
				return results, fmt.Errorf("answer %s: %w", q.ID, err)
			}
		}

		result, err := ctrl.Submit(ctx)
		if err != nil {
			return results, err
		}
		results = append(results, result)

		fmt.Fprintf(out, "round %d: session %s scored %d/%d (%.2f%%)\n",
			round, view.SessionID, result.Correct, result.Total, result.Percentage)
	}

	return results, nil
}
