package filter

import (
	"cmp"
	"slices"
	"strings"
)

// SortSpec orders a view by one field.
type SortSpec struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc,omitempty"`
}

// Sort returns a stably sorted copy of records. Timestamps compare chronologically, numbers
// numerically and everything else as case-insensitive text. On a mixed column numbers come
// before timestamps and timestamps before text. Records without the field go last in both
// directions. An empty Field returns the records in their original order.
func Sort(records []Record, spec SortSpec) []Record {
	out := append(make([]Record, 0, len(records)), records...)
	if spec.Field == "" {
		return out
	}
	slices.SortStableFunc(out, func(a, b Record) int {
		av, aok := a[spec.Field]
		bv, bok := b[spec.Field]
		aok = aok && av != nil
		bok = bok && bv != nil
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		}
		c := compareValues(a, b, spec.Field)
		if spec.Desc {
			return -c
		}
		return c
	})
	return out
}

// Value kinds in sort order. Values of different kinds compare by kind so the ordering stays
// transitive on mixed columns.
const (
	kindNumber = iota
	kindTime
	kindText
)

func sortKind(v any) int {
	if _, ok := numeric(v); ok {
		return kindNumber
	}
	if _, ok := timeValue(v); ok {
		return kindTime
	}
	return kindText
}

func compareValues(a, b Record, field string) int {
	av, bv := a[field], b[field]
	ak, bk := sortKind(av), sortKind(bv)
	if ak != bk {
		return cmp.Compare(ak, bk)
	}
	switch ak {
	case kindNumber:
		an, _ := numeric(av)
		bn, _ := numeric(bv)
		return cmp.Compare(an, bn)
	case kindTime:
		at, _ := timeValue(av)
		bt, _ := timeValue(bv)
		return at.Compare(bt)
	}
	return strings.Compare(strings.ToLower(formatValue(av)), strings.ToLower(formatValue(bv)))
}

// Page selects a window of a view. Limit <= 0 means no limit.
type Page struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// Paginate returns the page of records and the total number of records before paging.
func Paginate(records []Record, p Page) ([]Record, int) {
	total := len(records)
	start := p.Offset
	if start < 0 {
		start = 0
	}
	if start >= total {
		return []Record{}, total
	}
	end := total
	if p.Limit > 0 && p.Limit < total-start {
		end = start + p.Limit
	}
	return append(make([]Record, 0, end-start), records[start:end]...), total
}
