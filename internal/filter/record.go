// Package filter evaluates list-screen filters (text search, equality, membership and date
// range) over in-memory records. Every function here is pure: inputs are never mutated and the
// same inputs always produce the same output.
package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// IDField is the record field that carries the record identity.
const IDField = "id"

// Record is one entity instance (audit entry, appointment, business, ...) as a field map.
// Values are string, bool, a Go numeric type, or time.Time. Timestamps may also arrive as
// ISO-8601 strings. A nil value is treated the same as an absent field.
type Record map[string]any

// ID returns the record identity, or "" when the record has none.
func (r Record) ID() string {
	s, _ := r.Text(IDField)
	return s
}

// Text returns the field rendered as a string and whether the field is present.
func (r Record) Text(field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return "", false
	}
	return formatValue(v), true
}

// Time returns the field as a timestamp for a date criterion. Unparseable or non-date values
// report false.
func (r Record) Time(field string) (time.Time, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return time.Time{}, false
	}
	t, ok := timeValue(v)
	if !ok {
		assertDateValue(field, v)
	}
	return t, ok
}

// timeValue reads v as a timestamp without any debug assertion.
func timeValue(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return *x, true
	case string:
		return ParseTime(x)
	}
	return time.Time{}, false
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	case []byte:
		return string(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// numeric reports the value as float64 when it holds a Go numeric type.
func numeric(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	dateLayout,
}

const dateLayout = "2006-01-02"

// ParseTime parses an ISO-8601 timestamp or a plain date. Values without a zone are UTC.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// isDateOnly reports whether s is a calendar date with no time component.
func isDateOnly(s string) bool {
	_, err := time.Parse(dateLayout, strings.TrimSpace(s))
	return err == nil
}
