package practicesession

import (
	"math/rand"
	"sync"
	"time"

	"github.com/questcycle/backend/internal/domain/dependency"
	"github.com/questcycle/backend/internal/domain/questionbank"
)

// BuildResult is the outcome of one sampling pass.
type BuildResult struct {
	Questions []questionbank.Question
	// Exhausted is set when every principal in the pool was already
	// answered. The caller is expected to reset history and retry once.
	Exhausted bool
}

// Sampler draws sessions from a filtered pool without repeating answered
// questions and without splitting dependency groups.
type Sampler struct {
	catalog *dependency.Catalog

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewSampler creates a sampler. A nil rng is seeded from the clock; tests
// pass a fixed seed.
func NewSampler(catalog *dependency.Catalog, rng *rand.Rand) *Sampler {
	if catalog == nil {
		catalog = dependency.Empty()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Sampler{
		catalog: catalog,
		rng:     rng,
	}
}

func (s *Sampler) Catalog() *dependency.Catalog {
	return s.catalog
}

// Build selects at most k questions from pool.
//
// Principals not yet answered are drawn uniformly at random. A principal is
// taken together with all of its dependents, in catalog order, or not at
// all: if any dependent was already answered or is missing from the pool,
// or the whole group does not fit in the remaining capacity, the principal
// is dropped for this pass. Every drawn candidate leaves the available set,
// so the loop ends after at most len(available) draws.
func (s *Sampler) Build(pool []questionbank.Question, answered questionbank.Answered, k int) BuildResult {
	if k <= 0 {
		return BuildResult{}
	}

	if answered == nil {
		answered = nothingAnswered{}
	}
	bank := questionbank.New(pool)

	available := make([]questionbank.Question, 0, bank.Len())
	for _, q := range bank.Questions {
		if s.catalog.IsDependent(q.ID) {
			continue
		}
		if answered.Contains(q.ID) {
			continue
		}
		available = append(available, q)
	}

	if len(available) == 0 {
		return BuildResult{Exhausted: true}
	}

	session := make([]questionbank.Question, 0, k)

	s.mu.Lock()
	defer s.mu.Unlock()

	for len(session) < k && len(available) > 0 {
		i := s.rng.Intn(len(available))
		candidate := available[i]

		// remove by swapping with the last element; order of the
		// remaining candidates is irrelevant to a uniform draw
		last := len(available) - 1
		available[i] = available[last]
		available = available[:last]

		group, ok := s.assemble(candidate, bank, answered)
		if !ok {
			continue
		}
		if len(group) > k-len(session) {
			continue
		}
		session = append(session, group...)
	}

	return BuildResult{Questions: session}
}

// assemble returns candidate followed by its dependents, or false if the
// group cannot be used this round.
func (s *Sampler) assemble(candidate questionbank.Question, bank *questionbank.QuestionBank, answered questionbank.Answered) ([]questionbank.Question, bool) {
	deps := s.catalog.DependentsOf(candidate.ID)
	group := make([]questionbank.Question, 0, 1+len(deps))
	group = append(group, candidate)

	for _, depID := range deps {
		if answered.Contains(depID) {
			return nil, false
		}
		dep, ok := bank.Get(depID)
		if !ok {
			return nil, false
		}
		group = append(group, dep)
	}
	return group, true
}

type nothingAnswered struct{}

func (nothingAnswered) Contains(questionbank.ID) bool { return false }
