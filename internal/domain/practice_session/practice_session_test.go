package practicesession_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/questcycle/backend/internal/domain/category"
	"github.com/questcycle/backend/internal/domain/dependency"
	practicesession "github.com/questcycle/backend/internal/domain/practice_session"
	"github.com/questcycle/backend/internal/domain/questionbank"
)

type answeredSet map[questionbank.ID]bool

func (a answeredSet) Contains(id questionbank.ID) bool { return a[id] }

func makePool(n int) []questionbank.Question {
	pool := make([]questionbank.Question, n)
	for i := range pool {
		pool[i] = questionbank.Question{
			ID:            questionbank.ID(fmt.Sprint(i + 1)),
			Statement:     "Question " + fmt.Sprint(i+1),
			Choices:       []questionbank.Choice{{ID: "1"}, {ID: "2"}},
			CorrectChoice: "1",
		}
	}
	return pool
}

func newSampler(groups map[questionbank.ID][]questionbank.ID, seed int64) *practicesession.Sampler {
	return practicesession.NewSampler(dependency.MustNew(groups), rand.New(rand.NewSource(seed)))
}

func ids(questions []questionbank.Question) []questionbank.ID {
	out := make([]questionbank.ID, len(questions))
	for i, q := range questions {
		out[i] = q.ID
	}
	return out
}

// assertGroupAtomicity checks that every dependent present follows its
// principal immediately, in catalog order, and that no group is partial.
func assertGroupAtomicity(t *testing.T, catalog *dependency.Catalog, session []questionbank.Question) {
	t.Helper()

	position := make(map[questionbank.ID]int, len(session))
	for i, q := range session {
		if _, dup := position[q.ID]; dup {
			t.Fatalf("question %s scheduled twice", q.ID)
		}
		position[q.ID] = i
	}

	for i, q := range session {
		if p, isDep := catalog.PrincipalOf(q.ID); isDep {
			if _, ok := position[p]; !ok {
				t.Errorf("dependent %s present without principal %s", q.ID, p)
			}
			continue
		}
		for j, dep := range catalog.DependentsOf(q.ID) {
			at := i + 1 + j
			if at >= len(session) || session[at].ID != dep {
				t.Errorf("expected dependent %s at position %d after principal %s, session %v", dep, at, q.ID, ids(session))
			}
		}
	}
}

func TestBuild_FillsExactlyKWithSingletonGroups(t *testing.T) {
	sampler := newSampler(nil, 1)

	result := sampler.Build(makePool(50), answeredSet{}, 10)

	if result.Exhausted {
		t.Fatal("expected a non-exhausted result")
	}
	if len(result.Questions) != 10 {
		t.Errorf("expected 10 questions, got %d", len(result.Questions))
	}
}

func TestBuild_FewerAvailableThanK(t *testing.T) {
	sampler := newSampler(nil, 1)

	result := sampler.Build(makePool(4), answeredSet{}, 10)

	if len(result.Questions) != 4 {
		t.Errorf("expected all 4 questions, got %d", len(result.Questions))
	}
}

func TestBuild_SkipsAnsweredQuestions(t *testing.T) {
	sampler := newSampler(nil, 7)
	answered := answeredSet{"1": true, "2": true, "3": true}

	for seed := 0; seed < 20; seed++ {
		result := sampler.Build(makePool(6), answered, 10)
		for _, q := range result.Questions {
			if answered[q.ID] {
				t.Fatalf("answered question %s was drawn", q.ID)
			}
		}
		if len(result.Questions) != 3 {
			t.Fatalf("expected 3 unanswered questions, got %d", len(result.Questions))
		}
	}
}

func TestBuild_ExhaustedWhenAllPrincipalsAnswered(t *testing.T) {
	sampler := newSampler(map[questionbank.ID][]questionbank.ID{"1": {"2"}}, 1)
	// 2 is a dependent, so answering 1 and 3 exhausts the pool
	answered := answeredSet{"1": true, "3": true}

	result := sampler.Build(makePool(3), answered, 10)

	if !result.Exhausted {
		t.Error("expected exhausted result")
	}
	if len(result.Questions) != 0 {
		t.Errorf("expected no questions, got %v", ids(result.Questions))
	}
}

func TestBuild_EmptyPoolIsExhausted(t *testing.T) {
	sampler := newSampler(nil, 1)

	if result := sampler.Build(nil, answeredSet{}, 10); !result.Exhausted {
		t.Error("expected empty pool to report exhaustion")
	}
}

func TestBuild_GroupAtomicityAcrossSeeds(t *testing.T) {
	groups := map[questionbank.ID][]questionbank.ID{
		"1":  {"2"},
		"3":  {"4", "5"},
		"10": {"11", "12", "13"},
		"20": {"21"},
	}
	catalog := dependency.MustNew(groups)
	pool := makePool(30)

	for seed := int64(0); seed < 200; seed++ {
		sampler := practicesession.NewSampler(catalog, rand.New(rand.NewSource(seed)))
		result := sampler.Build(pool, answeredSet{}, 7)

		if len(result.Questions) > 7 {
			t.Fatalf("seed %d: session exceeds capacity: %d", seed, len(result.Questions))
		}
		assertGroupAtomicity(t, catalog, result.Questions)
	}
}

func TestBuild_DependentsNeverDrawnDirectly(t *testing.T) {
	groups := map[questionbank.ID][]questionbank.ID{"1": {"2", "3"}}
	// principal 1 is answered, so its dependents must never appear
	answered := answeredSet{"1": true}

	for seed := int64(0); seed < 50; seed++ {
		result := newSampler(groups, seed).Build(makePool(6), answered, 10)
		for _, q := range result.Questions {
			if q.ID == "2" || q.ID == "3" {
				t.Fatalf("seed %d: dependent %s drawn without its principal", seed, q.ID)
			}
		}
	}
}

func TestBuild_GroupWithAnsweredDependentIsIneligible(t *testing.T) {
	groups := map[questionbank.ID][]questionbank.ID{"1": {"2"}}
	answered := answeredSet{"2": true}

	for seed := int64(0); seed < 50; seed++ {
		result := newSampler(groups, seed).Build(makePool(4), answered, 10)
		got := ids(result.Questions)
		for _, id := range got {
			if id == "1" || id == "2" {
				t.Fatalf("seed %d: expected group 1 to be skipped, got %v", seed, got)
			}
		}
		if len(got) != 2 {
			t.Fatalf("seed %d: expected questions 3 and 4, got %v", seed, got)
		}
	}
}

func TestBuild_GroupWithDependentMissingFromPoolIsIneligible(t *testing.T) {
	groups := map[questionbank.ID][]questionbank.ID{"1": {"99"}}

	result := newSampler(groups, 3).Build(makePool(2), answeredSet{}, 10)

	got := ids(result.Questions)
	if len(got) != 1 || got[0] != "2" {
		t.Errorf("expected only question 2, got %v", got)
	}
}

func TestBuild_CapacityGateNeverSplitsGroups(t *testing.T) {
	groups := map[questionbank.ID][]questionbank.ID{"1": {"2", "3", "4"}}
	// pool: group of 4 plus one singleton, capacity 3
	pool := makePool(5)

	for seed := int64(0); seed < 50; seed++ {
		result := newSampler(groups, seed).Build(pool, answeredSet{}, 3)
		got := ids(result.Questions)
		if len(got) != 1 || got[0] != "5" {
			t.Fatalf("seed %d: expected only the singleton, got %v", seed, got)
		}
	}
}

func TestBuild_GroupFillsExactCapacity(t *testing.T) {
	groups := map[questionbank.ID][]questionbank.ID{"1": {"2", "3"}}

	result := newSampler(groups, 1).Build(makePool(3), answeredSet{}, 3)

	got := ids(result.Questions)
	want := []questionbank.ID{"1", "2", "3"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}

func TestBuild_IsDeterministicForSeed(t *testing.T) {
	pool := makePool(40)

	a := newSampler(nil, 42).Build(pool, answeredSet{}, 10)
	b := newSampler(nil, 42).Build(pool, answeredSet{}, 10)

	if fmt.Sprint(ids(a.Questions)) != fmt.Sprint(ids(b.Questions)) {
		t.Errorf("expected identical sessions for the same seed: %v vs %v", ids(a.Questions), ids(b.Questions))
	}
}

func TestBuild_RandomizesAcrossDraws(t *testing.T) {
	sampler := newSampler(nil, 5)
	pool := makePool(20)

	first := fmt.Sprint(ids(sampler.Build(pool, answeredSet{}, 10).Questions))
	for i := 0; i < 10; i++ {
		if fmt.Sprint(ids(sampler.Build(pool, answeredSet{}, 10).Questions)) != first {
			return
		}
	}
	t.Error("expected questions to be randomized across sessions")
}

func TestBuild_NonPositiveK(t *testing.T) {
	result := newSampler(nil, 1).Build(makePool(5), answeredSet{}, 0)

	if len(result.Questions) != 0 || result.Exhausted {
		t.Errorf("expected empty, non-exhausted result, got %+v", result)
	}
}

func TestNew_CopiesQuestions(t *testing.T) {
	questions := makePool(3)
	session := practicesession.New(category.Predicates{Level: "Médio"}, questions)

	if session.ID == "" {
		t.Error("expected non-empty ID")
	}
	if session.Len() != 3 {
		t.Errorf("expected 3 questions, got %d", session.Len())
	}

	questions[0].Statement = "mutated"
	if session.Questions[0].Statement == "mutated" {
		t.Error("expected session to own its question slice")
	}

	if _, ok := session.Question("2"); !ok {
		t.Error("expected question 2 to be found")
	}
}

func TestDefaultConfig(t *testing.T) {
	config := practicesession.DefaultConfig()

	if config.Size != 10 {
		t.Errorf("expected default size 10, got %d", config.Size)
	}
	if (practicesession.SessionConfig{}).EffectiveSize() != practicesession.DefaultSize {
		t.Error("expected zero size to fall back to the default")
	}
}
