package domain

import (
	"fmt"
	"time"
)

// Membership links a team member to a business with a role.
type Membership struct {
	ID        string
	UserID    string
	OrgID     string
	Name      string
	Email     string
	Role      Role
	Status    Status
	CreatedAt time.Time
}

type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Roles lists every role from most to least privileged.
func Roles() []Role {
	return []Role{RoleOwner, RoleAdmin, RoleMember}
}

// ParseRole returns the role named by s.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// IsAdmin reports whether r may use the admin screens.
func (r Role) IsAdmin() bool {
	switch r {
	case RoleOwner, RoleAdmin:
		return true
	case RoleMember:
		return false
	}
	return false
}

// Status is the team member's standing in the business.
type Status string

const (
	StatusActive    Status = "active"
	StatusInvited   Status = "invited"
	StatusSuspended Status = "suspended"
)

// Statuses lists every member status.
func Statuses() []Status {
	return []Status{StatusActive, StatusInvited, StatusSuspended}
}

// Valid reports whether s is a known member status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInvited, StatusSuspended:
		return true
	}
	return false
}
