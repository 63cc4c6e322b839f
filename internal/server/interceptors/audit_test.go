package interceptors

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"bookingdesk/backend/internal/audit"
	auditdomain "bookingdesk/backend/internal/audit/domain"
)

// mockAuditLogger implements audit.AuditLogger for interceptor tests.
type mockAuditLogger struct {
	events []audit.Event
}

func (m *mockAuditLogger) LogEvent(ctx context.Context, ev audit.Event) {
	m.events = append(m.events, ev)
}

func okHandler(ctx context.Context, req interface{}) (interface{}, error) {
	return "success", nil
}

func TestAuditUnary_SkipMethod(t *testing.T) {
	logger := &mockAuditLogger{}
	interceptor := AuditUnary(logger, map[string]bool{"/grpc.health.v1.Health/Check": true})

	ctx := WithIdentity(context.Background(), "user-1", "org-1", "session-1")
	resp, err := interceptor(ctx, "request", &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}, okHandler)
	if err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if resp != "success" {
		t.Errorf("response = %v, want %q", resp, "success")
	}
	if len(logger.events) != 0 {
		t.Errorf("audit events = %d, want 0", len(logger.events))
	}
}

func TestAuditUnary_AuthenticatedRequest(t *testing.T) {
	logger := &mockAuditLogger{}
	interceptor := AuditUnary(logger, map[string]bool{})

	req, _ := structpb.NewStruct(map[string]interface{}{"screen": "appointments"})
	ctx := WithIdentity(context.Background(), "user-1", "org-1", "session-1")
	if _, err := interceptor(ctx, req, &grpc.UnaryServerInfo{FullMethod: "/bookingdesk.view.v1.ViewService/ListView"}, okHandler); err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if len(logger.events) != 1 {
		t.Fatalf("audit events = %d, want 1", len(logger.events))
	}
	ev := logger.events[0]
	if ev.OrgID != "org-1" || ev.UserID != "user-1" {
		t.Errorf("event identity = %q/%q", ev.OrgID, ev.UserID)
	}
	if ev.Action != "list" || ev.Resource != "view" {
		t.Errorf("action/resource = %q/%q, want list/view", ev.Action, ev.Resource)
	}
	if ev.Severity != auditdomain.SeverityLow {
		t.Errorf("severity = %q, want low", ev.Severity)
	}
	var meta auditMetadata
	if err := json.Unmarshal([]byte(ev.Metadata), &meta); err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta.Screen != "appointments" || meta.StatusCode != "OK" {
		t.Errorf("metadata = %+v", meta)
	}
}

func TestAuditUnary_UnauthenticatedRequest(t *testing.T) {
	logger := &mockAuditLogger{}
	interceptor := AuditUnary(logger, map[string]bool{})

	if _, err := interceptor(context.Background(), "request", &grpc.UnaryServerInfo{FullMethod: "/test.Service/SomeMethod"}, okHandler); err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if len(logger.events) != 0 {
		t.Errorf("audit events = %d, want 0 (no org context)", len(logger.events))
	}
}

func TestAuditUnary_NilLogger(t *testing.T) {
	interceptor := AuditUnary(nil, nil)
	ctx := WithIdentity(context.Background(), "user-1", "org-1", "session-1")
	if _, err := interceptor(ctx, "request", &grpc.UnaryServerInfo{FullMethod: "/test.Service/SomeMethod"}, okHandler); err != nil {
		t.Fatalf("interceptor: %v", err)
	}
}

func TestAuditUnary_HandlerError(t *testing.T) {
	logger := &mockAuditLogger{}
	interceptor := AuditUnary(logger, map[string]bool{})

	ctx := WithIdentity(context.Background(), "user-1", "org-1", "session-1")
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, errors.New("handler error")
	}
	if _, err := interceptor(ctx, "request", &grpc.UnaryServerInfo{FullMethod: "/test.Service/SomeMethod"}, handler); err == nil {
		t.Fatal("expected error from handler")
	}
	if len(logger.events) != 1 {
		t.Fatalf("audit events = %d, want 1", len(logger.events))
	}
	if want := `"status_code":"Unknown"`; !strings.Contains(logger.events[0].Metadata, want) {
		t.Errorf("metadata = %s, want %s", logger.events[0].Metadata, want)
	}
}
