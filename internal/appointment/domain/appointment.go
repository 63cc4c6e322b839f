package domain

import (
	"fmt"
	"time"
)

// Appointment is a client booking with a business staff member.
type Appointment struct {
	ID          string
	OrgID       string
	ClientName  string
	ClientEmail string
	ServiceName string
	StaffID     string
	StaffName   string
	Status      Status
	StartsAt    time.Time
	EndsAt      time.Time
	Notes       string
	CreatedAt   time.Time
}

// Status is the booking lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Statuses lists every status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}
}

// ParseStatus returns the status named by s.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown appointment status %q", s)
	}
	return st, nil
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible from s.
func (s Status) Terminal() bool {
	switch s {
	case StatusCancelled, StatusCompleted:
		return true
	case StatusPending, StatusConfirmed:
		return false
	}
	return false
}

// CanTransition reports whether an appointment in s may move to next.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	case StatusCancelled, StatusCompleted:
		return false
	}
	return false
}
