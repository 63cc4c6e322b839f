package filter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCriteria is returned by NewCriteria for a malformed declaration.
var ErrInvalidCriteria = errors.New("filter: invalid criteria")

// Kind is the predicate family a criterion belongs to.
type Kind string

const (
	KindTextSearch Kind = "textSearch"
	KindEquality   Kind = "equality"
	KindMembership Kind = "membership"
	KindDateRange  Kind = "dateRange"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindTextSearch, KindEquality, KindMembership, KindDateRange:
		return true
	}
	return false
}

// Criterion is a named filter rule over one or more record fields.
// Only textSearch may inspect more than one field.
type Criterion struct {
	Name   string   `json:"name"`
	Kind   Kind     `json:"kind"`
	Fields []string `json:"fields"`
}

// TextSearch returns a case-insensitive substring criterion over fields.
func TextSearch(name string, fields ...string) Criterion {
	return Criterion{Name: name, Kind: KindTextSearch, Fields: fields}
}

// Equality returns an exact-match criterion over field.
func Equality(name, field string) Criterion {
	return Criterion{Name: name, Kind: KindEquality, Fields: []string{field}}
}

// Membership returns a one-of criterion over field.
func Membership(name, field string) Criterion {
	return Criterion{Name: name, Kind: KindMembership, Fields: []string{field}}
}

// DateRange returns an inclusive timestamp window criterion over field.
func DateRange(name, field string) Criterion {
	return Criterion{Name: name, Kind: KindDateRange, Fields: []string{field}}
}

// Field returns the first inspected field.
func (c Criterion) Field() string {
	if len(c.Fields) == 0 {
		return ""
	}
	return c.Fields[0]
}

func (c Criterion) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: criterion name must be set", ErrInvalidCriteria)
	}
	if !c.Kind.Valid() {
		return fmt.Errorf("%w: criterion %q has unknown kind %q", ErrInvalidCriteria, c.Name, c.Kind)
	}
	if len(c.Fields) == 0 {
		return fmt.Errorf("%w: criterion %q has no fields", ErrInvalidCriteria, c.Name)
	}
	for _, f := range c.Fields {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("%w: criterion %q has an empty field name", ErrInvalidCriteria, c.Name)
		}
	}
	if c.Kind != KindTextSearch && len(c.Fields) != 1 {
		return fmt.Errorf("%w: %s criterion %q must inspect exactly one field", ErrInvalidCriteria, c.Kind, c.Name)
	}
	return nil
}

// Criteria is a validated, ordered criteria declaration for one screen.
// Criteria are evaluated in declaration order.
type Criteria struct {
	list  []Criterion
	index map[string]int
}

// NewCriteria validates the declaration. It fails on an empty or duplicate name, an unknown kind,
// or a field list that does not fit the kind.
func NewCriteria(cs ...Criterion) (*Criteria, error) {
	c := &Criteria{
		list:  make([]Criterion, 0, len(cs)),
		index: make(map[string]int, len(cs)),
	}
	for _, cr := range cs {
		if err := cr.validate(); err != nil {
			return nil, err
		}
		if _, dup := c.index[cr.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate criterion %q", ErrInvalidCriteria, cr.Name)
		}
		cr.Fields = append([]string(nil), cr.Fields...)
		c.index[cr.Name] = len(c.list)
		c.list = append(c.list, cr)
	}
	return c, nil
}

// MustCriteria is NewCriteria for static declarations; it panics on a malformed declaration.
func MustCriteria(cs ...Criterion) *Criteria {
	c, err := NewCriteria(cs...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of declared criteria.
func (c *Criteria) Len() int {
	if c == nil {
		return 0
	}
	return len(c.list)
}

// List returns a copy of the declared criteria in declaration order.
func (c *Criteria) List() []Criterion {
	if c == nil {
		return nil
	}
	out := make([]Criterion, len(c.list))
	for i, cr := range c.list {
		cr.Fields = append([]string(nil), cr.Fields...)
		out[i] = cr
	}
	return out
}

// Lookup returns the criterion declared under name.
func (c *Criteria) Lookup(name string) (Criterion, bool) {
	if c == nil {
		return Criterion{}, false
	}
	i, ok := c.index[name]
	if !ok {
		return Criterion{}, false
	}
	cr := c.list[i]
	cr.Fields = append([]string(nil), cr.Fields...)
	return cr, true
}
