package filter

import "time"

// Wildcard is the selection value meaning "no constraint".
const Wildcard = "all"

// Selection is the live value bound to one criterion: Text, Set or Range.
// A selection whose type does not fit the criterion kind does not constrain.
type Selection interface {
	active() bool
}

// Text is a search query or a selected equality value. "" and Wildcard do not constrain.
type Text string

func (t Text) active() bool {
	return t != "" && t != Wildcard
}

// Set is a membership selection. An empty set does not constrain.
type Set []string

func (s Set) active() bool {
	return len(s) > 0
}

// Preset is a date window relative to the caller-supplied now.
type Preset string

const (
	PresetToday      Preset = "today"
	PresetLast7Days  Preset = "last7days"
	PresetLast30Days Preset = "last30days"
	PresetThisMonth  Preset = "thisMonth"
)

// Valid reports whether p is a known preset.
func (p Preset) Valid() bool {
	switch p {
	case PresetToday, PresetLast7Days, PresetLast30Days, PresetThisMonth:
		return true
	}
	return false
}

// window resolves the preset against now in UTC. Both bounds are inclusive.
func (p Preset) window(now time.Time) (from, to time.Time) {
	now = now.UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch p {
	case PresetToday:
		return day, day.Add(24*time.Hour - time.Nanosecond)
	case PresetLast7Days:
		return now.Add(-7 * 24 * time.Hour), now
	case PresetLast30Days:
		return now.Add(-30 * 24 * time.Hour), now
	case PresetThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), now
	}
	return time.Time{}, time.Time{}
}

// Range is a date selection: either a Preset or explicit From/To bounds as ISO-8601 strings.
// A known Preset takes precedence over the bounds. An empty or unparseable bound leaves that side
// open; a To bound that is a plain date covers the whole day.
type Range struct {
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Preset Preset `json:"preset,omitempty"`
}

func (r Range) active() bool {
	return r.From != "" || r.To != "" || (r.Preset != "" && r.Preset != Wildcard)
}

// bounds returns the resolved window. ok is false when neither side constrains or the window is
// inverted.
func (r Range) bounds(now time.Time) (from, to *time.Time, ok bool) {
	if r.Preset.Valid() {
		f, t := r.Preset.window(now)
		return &f, &t, true
	}
	if t, parsed := ParseTime(r.From); parsed {
		from = &t
	}
	if t, parsed := ParseTime(r.To); parsed {
		if isDateOnly(r.To) {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		to = &t
	}
	if from == nil && to == nil {
		return nil, nil, false
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, false
	}
	return from, to, true
}

// State maps criterion names to their current selections. Names not declared by the criteria
// are ignored.
type State map[string]Selection

// With returns a copy of s with name bound to v.
func (s State) With(name string, v Selection) State {
	out := make(State, len(s)+1)
	for k, sel := range s {
		out[k] = sel
	}
	out[name] = v
	return out
}

// IsWildcard reports whether no selection in s constrains anything.
func IsWildcard(s State) bool {
	for _, sel := range s {
		if sel != nil && sel.active() {
			return false
		}
	}
	return true
}
