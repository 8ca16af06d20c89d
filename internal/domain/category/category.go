package category

import (
	"fmt"
	"strings"

	"github.com/questcycle/backend/internal/domain/questionbank"
)

// Predicates narrows a question pool by category attributes. An empty
// field matches any value.
type Predicates struct {
	Role   string `json:"cargo"`
	Level  string `json:"nivel"`
	Source string `json:"banca"`
}

// Predicate is one applied attribute filter.
type Predicate struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// Normalize trims surrounding whitespace from every field.
func (p Predicates) Normalize() Predicates {
	return Predicates{
		Role:   strings.TrimSpace(p.Role),
		Level:  strings.TrimSpace(p.Level),
		Source: strings.TrimSpace(p.Source),
	}
}

func (p Predicates) IsEmpty() bool {
	return p.Role == "" && p.Level == "" && p.Source == ""
}

// Applied returns the non-empty predicates in a fixed order.
func (p Predicates) Applied() []Predicate {
	var applied []Predicate
	if p.Source != "" {
		applied = append(applied, Predicate{Field: "source", Value: p.Source})
	}
	if p.Role != "" {
		applied = append(applied, Predicate{Field: "role", Value: p.Role})
	}
	if p.Level != "" {
		applied = append(applied, Predicate{Field: "level", Value: p.Level})
	}
	return applied
}

// Describe renders the message shown when a filter yields nothing.
func (p Predicates) Describe() string {
	var b strings.Builder
	b.WriteString("no questions found")
	for i, pr := range p.Applied() {
		if i == 0 {
			b.WriteString(" for")
		}
		fmt.Fprintf(&b, " %s %q", pr.Field, pr.Value)
	}
	return b.String()
}

// Matches reports whether q satisfies every non-empty predicate. Comparison
// is exact and case-sensitive.
func (p Predicates) Matches(q questionbank.Question) bool {
	if p.Role != "" && q.Role != p.Role {
		return false
	}
	if p.Level != "" && q.Level != p.Level {
		return false
	}
	if p.Source != "" && q.Source != p.Source {
		return false
	}
	return true
}

// Filter returns the questions matching p, preserving input order. The
// result is never nil.
func Filter(questions []questionbank.Question, p Predicates) []questionbank.Question {
	filtered := make([]questionbank.Question, 0, len(questions))
	for _, q := range questions {
		if p.Matches(q) {
			filtered = append(filtered, q)
		}
	}
	return filtered
}
