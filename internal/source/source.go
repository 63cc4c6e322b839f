// Package source defines the data-fetch boundary between list screens and the data backend.
// Implementations live in subpackages: postgres, supabase (hosted backend), cache (read-through
// Redis decorator) and fixture (demo data).
package source

import (
	"context"
	"errors"
	"fmt"

	"bookingdesk/backend/internal/filter"
)

// ErrUnknownCollection is returned for a collection outside the Collections list.
var ErrUnknownCollection = errors.New("source: unknown collection")

// ErrOrgRequired is returned when a tenant-scoped collection is requested without an org.
var ErrOrgRequired = errors.New("source: org_id is required")

// Origin marks where the records of a response came from. Demo data is never mixed into a
// live response.
type Origin string

const (
	OriginLive Origin = "live"
	OriginDemo Origin = "demo"
)

// Collection names a record collection. Collection names double as table names.
type Collection string

const (
	CollectionAuditLogs      Collection = "audit_logs"
	CollectionLoginHistory   Collection = "login_history"
	CollectionSecurityEvents Collection = "security_events"
	CollectionTeamMembers    Collection = "team_members"
	CollectionAppointments   Collection = "appointments"
	CollectionMessages       Collection = "messages"
	CollectionBusinesses     Collection = "businesses"
)

// Collections lists every known collection.
func Collections() []Collection {
	return []Collection{
		CollectionAuditLogs,
		CollectionLoginHistory,
		CollectionSecurityEvents,
		CollectionTeamMembers,
		CollectionAppointments,
		CollectionMessages,
		CollectionBusinesses,
	}
}

// Valid reports whether c is a known collection.
func (c Collection) Valid() bool {
	switch c {
	case CollectionAuditLogs, CollectionLoginHistory, CollectionSecurityEvents,
		CollectionTeamMembers, CollectionAppointments, CollectionMessages, CollectionBusinesses:
		return true
	}
	return false
}

// TenantScoped reports whether the records of c belong to a single business.
func (c Collection) TenantScoped() bool {
	return c != CollectionBusinesses
}

// Request asks for every record of one collection visible to one business.
type Request struct {
	OrgID      string
	Collection Collection
}

// Validate checks the collection and, for tenant-scoped collections, the org.
func (r Request) Validate() error {
	if !r.Collection.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, r.Collection)
	}
	if r.Collection.TenantScoped() && r.OrgID == "" {
		return ErrOrgRequired
	}
	return nil
}

// Response holds the fetched records and their origin.
type Response struct {
	Records []filter.Record
	Origin  Origin
}

// Source fetches record collections. Implementations must be safe for concurrent use.
type Source interface {
	Fetch(ctx context.Context, req Request) (Response, error)
}
