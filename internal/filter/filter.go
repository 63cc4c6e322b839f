package filter

import (
	"strings"
	"time"
)

type predicate func(Record) bool

// Apply returns the records that satisfy every active criterion in state, in their original
// order. It never mutates records and always returns a new slice. now is only read by relative
// date presets.
//
// A selection that is absent, wildcard, of the wrong type for its criterion, or otherwise
// unusable does not constrain. A record missing the inspected field fails equality, membership
// and date criteria, and is searched as an empty string by text search.
func Apply(records []Record, state State, criteria *Criteria, now time.Time) []Record {
	out := make([]Record, 0, len(records))
	preds := compile(criteria, state, now)
	for _, r := range records {
		if matchAll(r, preds) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether a single record satisfies every active criterion in state.
func Matches(r Record, state State, criteria *Criteria, now time.Time) bool {
	return matchAll(r, compile(criteria, state, now))
}

func matchAll(r Record, preds []predicate) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}

func compile(criteria *Criteria, state State, now time.Time) []predicate {
	if criteria == nil || len(state) == 0 {
		return nil
	}
	preds := make([]predicate, 0, len(state))
	for _, cr := range criteria.list {
		sel, ok := state[cr.Name]
		if !ok || sel == nil || !sel.active() {
			continue
		}
		if p := cr.predicate(sel, now); p != nil {
			preds = append(preds, p)
		}
	}
	return preds
}

// predicate builds the record test for sel, or nil when sel does not constrain.
func (c Criterion) predicate(sel Selection, now time.Time) predicate {
	switch c.Kind {
	case KindTextSearch:
		q, ok := sel.(Text)
		if !ok {
			return nil
		}
		return textSearch(c.Fields, strings.ToLower(string(q)))
	case KindEquality:
		want, ok := sel.(Text)
		if !ok {
			return nil
		}
		return equality(c.Field(), string(want))
	case KindMembership:
		set, ok := sel.(Set)
		if !ok {
			return nil
		}
		return membership(c.Field(), set)
	case KindDateRange:
		rg, ok := sel.(Range)
		if !ok {
			return nil
		}
		from, to, ok := rg.bounds(now)
		if !ok {
			return nil
		}
		return dateRange(c.Field(), from, to)
	}
	return nil
}

func textSearch(fields []string, needle string) predicate {
	return func(r Record) bool {
		for _, f := range fields {
			v, _ := r.Text(f)
			if strings.Contains(strings.ToLower(v), needle) {
				return true
			}
		}
		return false
	}
}

func equality(field, want string) predicate {
	return func(r Record) bool {
		got, ok := r.Text(field)
		return ok && got == want
	}
}

func membership(field string, set Set) predicate {
	allowed := make(map[string]struct{}, len(set))
	for _, v := range set {
		allowed[v] = struct{}{}
	}
	return func(r Record) bool {
		got, ok := r.Text(field)
		if !ok {
			return false
		}
		_, in := allowed[got]
		return in
	}
}

func dateRange(field string, from, to *time.Time) predicate {
	return func(r Record) bool {
		t, ok := r.Time(field)
		if !ok {
			return false
		}
		if from != nil && t.Before(*from) {
			return false
		}
		if to != nil && t.After(*to) {
			return false
		}
		return true
	}
}
