package dependency_test

import (
	"errors"
	"testing"

	"github.com/questcycle/backend/internal/domain/dependency"
	"github.com/questcycle/backend/internal/domain/questionbank"
)

type groups = map[questionbank.ID][]questionbank.ID

func TestNew_DefaultGroupsAreWellFormed(t *testing.T) {
	c, err := dependency.New(dependency.DefaultGroups())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Len() != 8 {
		t.Errorf("expected 8 groups, got %d", c.Len())
	}

	deps := c.DependentsOf("221")
	want := []questionbank.ID{"222", "223", "224"}
	if len(deps) != len(want) {
		t.Fatalf("expected %v, got %v", want, deps)
	}
	for i := range want {
		if deps[i] != want[i] {
			t.Errorf("expected %v in declared order, got %v", want, deps)
		}
	}

	if !c.IsDependent("223") {
		t.Error("expected 223 to be a dependent")
	}
	if c.IsDependent("221") {
		t.Error("expected 221 not to be a dependent")
	}
	if p, ok := c.PrincipalOf("5"); !ok || p != "3" {
		t.Errorf("expected principal 3 for 5, got %q", p)
	}
}

func TestDependentsOf_UnknownPrincipal(t *testing.T) {
	c := dependency.MustNew(groups{"1": {"2"}})

	if deps := c.DependentsOf("99"); len(deps) != 0 {
		t.Errorf("expected no dependents, got %v", deps)
	}
	if deps := c.DependentsOf("2"); len(deps) != 0 {
		t.Errorf("expected a dependent to have no dependents, got %v", deps)
	}
}

func TestDependentsOf_ReturnsCopy(t *testing.T) {
	c := dependency.MustNew(groups{"1": {"2", "3"}})

	deps := c.DependentsOf("1")
	deps[0] = "mutated"

	if c.DependentsOf("1")[0] != "2" {
		t.Error("expected catalog to be unaffected by caller mutation")
	}
}

func TestNew_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		groups groups
	}{
		{"dependent under two principals", groups{"1": {"3"}, "2": {"3"}}},
		{"principal is also a dependent", groups{"1": {"2"}, "2": {"3"}}},
		{"self dependency", groups{"1": {"1"}}},
		{"empty group", groups{"1": {}}},
		{"duplicate dependent", groups{"1": {"2", "2"}}},
		{"empty dependent id", groups{"1": {""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := dependency.New(tt.groups)
			if !errors.Is(err, dependency.ErrMalformedCatalog) {
				t.Errorf("expected ErrMalformedCatalog, got %v", err)
			}
			if c != nil {
				t.Error("expected no catalog on error")
			}
		})
	}
}

func TestEmpty(t *testing.T) {
	c := dependency.Empty()
	if c.Len() != 0 || c.IsDependent("1") {
		t.Error("expected empty catalog")
	}
}
