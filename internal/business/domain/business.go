package domain

import (
	"errors"
	"time"
)

// Business is a tenant listed in the public business search.
type Business struct {
	ID          string
	Name        string
	Category    string
	City        string
	Country     string
	Description string
	Rating      float64
	Status      Status
	CreatedAt   time.Time
}

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// Validate validates the business for persistence. Returns an error describing the first validation failure.
func (b *Business) Validate() error {
	if b.Name == "" {
		return errors.New("name is required")
	}
	if b.Status == "" {
		b.Status = StatusActive
	}
	if b.Rating < 0 || b.Rating > 5 {
		return errors.New("rating must be between 0 and 5")
	}
	return nil
}
