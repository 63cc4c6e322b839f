package domain

import (
	"fmt"
	"time"
)

// AuditLog represents an audit event.
type AuditLog struct {
	ID        string
	OrgID     string
	UserID    string
	UserName  string
	Action    string
	Resource  string
	Severity  Severity
	IP        string
	Metadata  string
	CreatedAt time.Time
}

// LoginEvent is one entry of the login history.
type LoginEvent struct {
	ID        string
	OrgID     string
	UserID    string
	UserName  string
	Outcome   LoginOutcome
	IP        string
	UserAgent string
	CreatedAt time.Time
}

// SecurityEvent is a notable security signal (lockout, new device, permission change).
type SecurityEvent struct {
	ID          string
	OrgID       string
	UserID      string
	UserName    string
	EventType   string
	Severity    Severity
	Description string
	CreatedAt   time.Time
}

// Severity ranks audit and security events.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities lists every severity from least to most severe.
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// ParseSeverity returns the severity named by s.
func ParseSeverity(s string) (Severity, error) {
	sv := Severity(s)
	if !sv.Valid() {
		return "", fmt.Errorf("unknown severity %q", s)
	}
	return sv, nil
}

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// LoginOutcome is the result of one sign-in attempt in the login history.
type LoginOutcome string

const (
	LoginSuccess LoginOutcome = "success"
	LoginFailed  LoginOutcome = "failed"
)

// LoginOutcomes lists every login outcome.
func LoginOutcomes() []LoginOutcome {
	return []LoginOutcome{LoginSuccess, LoginFailed}
}

// Valid reports whether o is a known outcome.
func (o LoginOutcome) Valid() bool {
	switch o {
	case LoginSuccess, LoginFailed:
		return true
	}
	return false
}
