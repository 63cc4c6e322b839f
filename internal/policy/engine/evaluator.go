package engine

import "context"

// AccessInput describes one attempt to open a list screen.
type AccessInput struct {
	OrgID  string
	UserID string
	// Role and Status come from the caller's membership in OrgID.
	Role   string
	Status string
	Screen string
	// Access is the screen's access level (admin or member).
	Access string
}

// Evaluator decides screen access using OPA or other engines.
type Evaluator interface {
	// AllowScreen reports whether the caller may open the screen. An error means no decision
	// could be made; callers must treat it as a denial.
	AllowScreen(ctx context.Context, in AccessInput) (bool, error)
}
