package domain

import "time"

// Message is one conversation message between a business and a client.
type Message struct {
	ID            string
	OrgID         string
	SenderName    string
	RecipientName string
	Subject       string
	Body          string
	Status        Status
	CreatedAt     time.Time
}

// Status is the inbox state of a message.
type Status string

const (
	StatusUnread   Status = "unread"
	StatusRead     Status = "read"
	StatusArchived Status = "archived"
)

// Statuses lists every message status.
func Statuses() []Status {
	return []Status{StatusUnread, StatusRead, StatusArchived}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusUnread, StatusRead, StatusArchived:
		return true
	}
	return false
}
