// Package screen declares the list screens of the dashboard: which collection each one reads, the
// filters it offers, its default order and who may open it.
package screen

import (
	"errors"
	"fmt"
	"sort"

	"bookingdesk/backend/internal/filter"
	"bookingdesk/backend/internal/source"
)

// ErrUnknownScreen is returned by Lookup for a name outside the catalog.
var ErrUnknownScreen = errors.New("screen: unknown screen")

// Name identifies a screen.
type Name string

const (
	AuditLogs      Name = "audit_logs"
	LoginHistory   Name = "login_history"
	SecurityEvents Name = "security_events"
	TeamMembers    Name = "team_members"
	Appointments   Name = "appointments"
	Messages       Name = "messages"
	Businesses     Name = "businesses"
)

// Access is the minimum role class that may open a screen.
type Access string

const (
	AccessAdmin  Access = "admin"
	AccessMember Access = "member"
)

// Facet is a selectable criterion whose options are offered to the client. Options holds the
// values of a closed enum; when nil the options are the distinct values in the fetched records.
type Facet struct {
	Criterion string
	Options   []string
}

// Screen is one catalog entry.
type Screen struct {
	Name        Name
	Collection  source.Collection
	Criteria    *filter.Criteria
	DefaultSort filter.SortSpec
	Access      Access
	Facets      []Facet
}

// FacetOptions returns the option list of every facet, keyed by criterion name.
func (s Screen) FacetOptions(records []filter.Record) map[string][]string {
	out := make(map[string][]string, len(s.Facets))
	for _, f := range s.Facets {
		if f.Options != nil {
			out[f.Criterion] = append([]string(nil), f.Options...)
			continue
		}
		c, ok := s.Criteria.Lookup(f.Criterion)
		if !ok {
			continue
		}
		out[f.Criterion] = DistinctSorted(c.Field(), records)
	}
	return out
}

// DistinctSorted returns the distinct values of field in lexical order.
func DistinctSorted(field string, records []filter.Record) []string {
	vals := filter.DistinctValues(field, records)
	sort.Strings(vals)
	return vals
}

// Lookup returns the screen called name.
func Lookup(name string) (Screen, error) {
	s, ok := catalog[Name(name)]
	if !ok {
		return Screen{}, fmt.Errorf("%w: %q", ErrUnknownScreen, name)
	}
	return s, nil
}

// All returns every screen ordered by name.
func All() []Screen {
	out := make([]Screen, 0, len(catalog))
	for _, s := range catalog {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// UserRef identifies users in the admin log collections.
var UserRef = filter.EntityRef{IDField: "user_id", LabelField: "user_name"}

// UserCollections are the collections scanned to build the user filter options.
func UserCollections() []source.Collection {
	return []source.Collection{
		source.CollectionAuditLogs,
		source.CollectionLoginHistory,
		source.CollectionSecurityEvents,
	}
}
