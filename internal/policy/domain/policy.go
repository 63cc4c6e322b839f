package domain

import "time"

// Policy is an org-level Rego module added to the screen access policy. Rules must declare the
// bookingdesk.screen_access package; its allow and deny rules are merged with the base policy.
type Policy struct {
	ID        string
	OrgID     string
	Rules     string
	Enabled   bool
	CreatedAt time.Time
}
