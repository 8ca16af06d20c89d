package dependency

import (
	"errors"
	"fmt"
	"sort"

	"github.com/questcycle/backend/internal/domain/questionbank"
)

// ErrMalformedCatalog is wrapped by every construction error.
var ErrMalformedCatalog = errors.New("malformed dependency catalog")

// Catalog maps principal questions to the dependents that must be drawn
// with them. It is read-only after New.
type Catalog struct {
	groups    map[questionbank.ID][]questionbank.ID
	principal map[questionbank.ID]questionbank.ID // dependent -> principal
}

// New validates groups and builds a catalog. A dependent may belong to one
// principal only, and no principal may itself be a dependent.
func New(groups map[questionbank.ID][]questionbank.ID) (*Catalog, error) {
	c := &Catalog{
		groups:    make(map[questionbank.ID][]questionbank.ID, len(groups)),
		principal: make(map[questionbank.ID]questionbank.ID),
	}

	// iterate in a stable order so error messages are reproducible
	principals := make([]questionbank.ID, 0, len(groups))
	for p := range groups {
		principals = append(principals, p)
	}
	sort.Slice(principals, func(i, j int) bool { return principals[i] < principals[j] })

	for _, p := range principals {
		deps := groups[p]
		if p == "" {
			return nil, fmt.Errorf("%w: empty principal id", ErrMalformedCatalog)
		}
		if len(deps) == 0 {
			return nil, fmt.Errorf("%w: principal %s has no dependents", ErrMalformedCatalog, p)
		}
		seen := make(map[questionbank.ID]struct{}, len(deps))
		for _, d := range deps {
			if d == "" {
				return nil, fmt.Errorf("%w: principal %s lists an empty dependent id", ErrMalformedCatalog, p)
			}
			if _, dup := seen[d]; dup {
				return nil, fmt.Errorf("%w: principal %s lists dependent %s twice", ErrMalformedCatalog, p, d)
			}
			seen[d] = struct{}{}
			if other, taken := c.principal[d]; taken {
				return nil, fmt.Errorf("%w: dependent %s listed under both %s and %s", ErrMalformedCatalog, d, other, p)
			}
			c.principal[d] = p
		}
		c.groups[p] = append([]questionbank.ID(nil), deps...)
	}

	for d, p := range c.principal {
		if _, isPrincipal := c.groups[d]; isPrincipal {
			return nil, fmt.Errorf("%w: %s is a principal and also a dependent of %s", ErrMalformedCatalog, d, p)
		}
	}

	return c, nil
}

// MustNew is New for static tables known to be valid.
func MustNew(groups map[questionbank.ID][]questionbank.ID) *Catalog {
	c, err := New(groups)
	if err != nil {
		panic(err)
	}
	return c
}

// Empty returns a catalog with no groups.
func Empty() *Catalog {
	return MustNew(nil)
}

// DependentsOf returns the dependents of id in declared order, or nil when
// id is not a principal. The returned slice is a copy.
func (c *Catalog) DependentsOf(id questionbank.ID) []questionbank.ID {
	deps := c.groups[id]
	if len(deps) == 0 {
		return nil
	}
	return append([]questionbank.ID(nil), deps...)
}

func (c *Catalog) IsDependent(id questionbank.ID) bool {
	_, ok := c.principal[id]
	return ok
}

func (c *Catalog) IsPrincipal(id questionbank.ID) bool {
	_, ok := c.groups[id]
	return ok
}

// PrincipalOf returns the principal a dependent belongs to.
func (c *Catalog) PrincipalOf(id questionbank.ID) (questionbank.ID, bool) {
	p, ok := c.principal[id]
	return p, ok
}

// Groups returns a deep copy of the catalog contents.
func (c *Catalog) Groups() map[questionbank.ID][]questionbank.ID {
	out := make(map[questionbank.ID][]questionbank.ID, len(c.groups))
	for p, deps := range c.groups {
		out[p] = append([]questionbank.ID(nil), deps...)
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.groups)
}

// DefaultGroups are the groups shipped with the public exam corpus: texts
// or figures shared by consecutive questions.
func DefaultGroups() map[questionbank.ID][]questionbank.ID {
	return map[questionbank.ID][]questionbank.ID{
		"1":   {"2"},
		"3":   {"4", "5"},
		"214": {"215"},
		"217": {"218"},
		"221": {"222", "223", "224"},
		"227": {"228"},
		"272": {"273"},
		"433": {"434"},
	}
}
