package telemetry

import (
	"context"
	"time"
)

// Event types emitted by the server.
const (
	EventViewRequest = "view_request"
)

// Event is one telemetry event. It is serialized as JSON on Kafka and as an OTel log record
// otherwise.
type Event struct {
	OrgID     string    `json:"org_id,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	EventType string    `json:"event_type"`
	Source    string    `json:"source,omitempty"`
	Metadata  []byte    `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// EventEmitter emits telemetry events (e.g. to OTel Logs or Kafka). Best-effort; callers log and ignore errors.
type EventEmitter interface {
	Emit(ctx context.Context, event *Event) error
}
