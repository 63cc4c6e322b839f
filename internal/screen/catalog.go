package screen

import (
	"fmt"

	appointmentdomain "bookingdesk/backend/internal/appointment/domain"
	auditdomain "bookingdesk/backend/internal/audit/domain"
	membershipdomain "bookingdesk/backend/internal/membership/domain"
	messagedomain "bookingdesk/backend/internal/message/domain"
	"bookingdesk/backend/internal/filter"
	"bookingdesk/backend/internal/source"
)

var catalog = build()

func build() map[Name]Screen {
	newest := filter.SortSpec{Field: "created_at", Desc: true}
	screens := []Screen{
		{
			Name:       AuditLogs,
			Collection: source.CollectionAuditLogs,
			Criteria: filter.MustCriteria(
				filter.TextSearch("search", "action", "resource", "user_name", "ip"),
				filter.Equality("severity", "severity"),
				filter.Equality("user", "user_id"),
				filter.Equality("resource", "resource"),
				filter.DateRange("created", "created_at"),
			),
			DefaultSort: newest,
			Access:      AccessAdmin,
			Facets: []Facet{
				{Criterion: "severity", Options: strs(auditdomain.Severities())},
				{Criterion: "resource"},
			},
		},
		{
			Name:       LoginHistory,
			Collection: source.CollectionLoginHistory,
			Criteria: filter.MustCriteria(
				filter.TextSearch("search", "user_name", "ip", "user_agent"),
				filter.Equality("outcome", "outcome"),
				filter.Equality("user", "user_id"),
				filter.DateRange("created", "created_at"),
			),
			DefaultSort: newest,
			Access:      AccessAdmin,
			Facets:      []Facet{{Criterion: "outcome", Options: strs(auditdomain.LoginOutcomes())}},
		},
		{
			Name:       SecurityEvents,
			Collection: source.CollectionSecurityEvents,
			Criteria: filter.MustCriteria(
				filter.TextSearch("search", "event_type", "description", "user_name"),
				filter.Membership("severity", "severity"),
				filter.DateRange("created", "created_at"),
			),
			DefaultSort: newest,
			Access:      AccessAdmin,
			Facets:      []Facet{{Criterion: "severity", Options: strs(auditdomain.Severities())}},
		},
		{
			Name:       TeamMembers,
			Collection: source.CollectionTeamMembers,
			Criteria: filter.MustCriteria(
				filter.TextSearch("search", "name", "email"),
				filter.Equality("role", "role"),
				filter.Equality("status", "status"),
			),
			DefaultSort: filter.SortSpec{Field: "name"},
			Access:      AccessAdmin,
			Facets: []Facet{
				{Criterion: "role", Options: strs(membershipdomain.Roles())},
				{Criterion: "status", Options: strs(membershipdomain.Statuses())},
			},
		},
		{
			Name:       Appointments,
			Collection: source.CollectionAppointments,
			Criteria: filter.MustCriteria(
				filter.TextSearch("search", "client_name", "client_email", "service_name", "staff_name"),
				filter.Membership("status", "status"),
				filter.Equality("staff", "staff_id"),
				filter.DateRange("starts", "starts_at"),
			),
			DefaultSort: filter.SortSpec{Field: "starts_at"},
			Access:      AccessMember,
			Facets: []Facet{
				{Criterion: "status", Options: strs(appointmentdomain.Statuses())},
				{Criterion: "staff"},
			},
		},
		{
			Name:       Messages,
			Collection: source.CollectionMessages,
			Criteria: filter.MustCriteria(
				filter.TextSearch("search", "subject", "body", "sender_name", "recipient_name"),
				filter.Equality("status", "status"),
				filter.DateRange("created", "created_at"),
			),
			DefaultSort: newest,
			Access:      AccessMember,
			Facets:      []Facet{{Criterion: "status", Options: strs(messagedomain.Statuses())}},
		},
		{
			Name:       Businesses,
			Collection: source.CollectionBusinesses,
			Criteria: filter.MustCriteria(
				filter.TextSearch("search", "name", "description", "city"),
				filter.Equality("category", "category"),
				filter.Equality("city", "city"),
				filter.Equality("country", "country"),
			),
			DefaultSort: filter.SortSpec{Field: "name"},
			Access:      AccessMember,
			Facets: []Facet{
				{Criterion: "category"},
				{Criterion: "city"},
				{Criterion: "country"},
			},
		},
	}

	out := make(map[Name]Screen, len(screens))
	for _, s := range screens {
		if err := check(s); err != nil {
			panic(err)
		}
		if _, dup := out[s.Name]; dup {
			panic(fmt.Sprintf("screen: duplicate screen %q", s.Name))
		}
		out[s.Name] = s
	}
	return out
}

func check(s Screen) error {
	if !s.Collection.Valid() {
		return fmt.Errorf("screen %s: unknown collection %q", s.Name, s.Collection)
	}
	switch s.Access {
	case AccessAdmin, AccessMember:
	default:
		return fmt.Errorf("screen %s: unknown access %q", s.Name, s.Access)
	}
	if s.DefaultSort.Field == "" {
		return fmt.Errorf("screen %s: default sort field is required", s.Name)
	}
	for _, f := range s.Facets {
		c, ok := s.Criteria.Lookup(f.Criterion)
		if !ok {
			return fmt.Errorf("screen %s: facet %q has no criterion", s.Name, f.Criterion)
		}
		if c.Kind != filter.KindEquality && c.Kind != filter.KindMembership {
			return fmt.Errorf("screen %s: facet %q is a %s criterion", s.Name, f.Criterion, c.Kind)
		}
	}
	return nil
}

func strs[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}
