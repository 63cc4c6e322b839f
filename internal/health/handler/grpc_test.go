package handler

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// mockPinger implements Pinger for tests.
type mockPinger struct {
	pingErr error
	calls   int
}

func (m *mockPinger) PingContext(context.Context) error {
	m.calls++
	return m.pingErr
}

// mockPolicyChecker implements PolicyChecker for tests.
type mockPolicyChecker struct {
	healthErr error
}

func (m *mockPolicyChecker) HealthCheck(context.Context) error {
	return m.healthErr
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		policy  PolicyChecker
		pingers []Pinger
		want    healthpb.HealthCheckResponse_ServingStatus
	}{
		{"no dependencies", nil, nil, healthpb.HealthCheckResponse_SERVING},
		{"nil pinger skipped", nil, []Pinger{nil}, healthpb.HealthCheckResponse_SERVING},
		{"pinger success", nil, []Pinger{&mockPinger{}}, healthpb.HealthCheckResponse_SERVING},
		{"pinger failure", nil, []Pinger{&mockPinger{pingErr: errors.New("connection refused")}}, healthpb.HealthCheckResponse_NOT_SERVING},
		{"second pinger failure", nil, []Pinger{&mockPinger{}, &mockPinger{pingErr: errors.New("redis down")}}, healthpb.HealthCheckResponse_NOT_SERVING},
		{"policy success", &mockPolicyChecker{}, nil, healthpb.HealthCheckResponse_SERVING},
		{"policy failure", &mockPolicyChecker{healthErr: errors.New("rego compile failed")}, []Pinger{&mockPinger{}}, healthpb.HealthCheckResponse_NOT_SERVING},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer(tt.policy, nil, tt.pingers...)
			resp, err := srv.Check(context.Background(), &healthpb.HealthCheckRequest{})
			if err != nil {
				t.Fatalf("Check must not return a gRPC error: %v", err)
			}
			if resp.GetStatus() != tt.want {
				t.Errorf("status = %v, want %v", resp.GetStatus(), tt.want)
			}
		})
	}
}

func TestCheck_StopsAtFirstFailure(t *testing.T) {
	first := &mockPinger{pingErr: errors.New("down")}
	second := &mockPinger{}
	srv := NewServer(nil, nil, first, second)
	if _, err := srv.Check(context.Background(), &healthpb.HealthCheckRequest{}); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if second.calls != 0 {
		t.Errorf("second pinger called %d times after first failed", second.calls)
	}
}

func TestWatch_Unimplemented(t *testing.T) {
	srv := NewServer(nil, nil)
	if err := srv.Watch(&healthpb.HealthCheckRequest{}, nil); status.Code(err) != codes.Unimplemented {
		t.Errorf("code = %v, want Unimplemented", status.Code(err))
	}
}
