package handler

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

const checkTimeout = 2 * time.Second

// Pinger checks a backing store, e.g. *sql.DB or the Redis record cache.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PolicyChecker checks that the screen access policy can be evaluated.
type PolicyChecker interface {
	HealthCheck(ctx context.Context) error
}

// Server implements grpc.health.v1.Health for readiness and liveness probes.
type Server struct {
	healthpb.UnimplementedHealthServer
	pingers []Pinger
	policy  PolicyChecker
	logger  *zap.Logger
}

// NewServer returns a new Health gRPC server. Nil pingers are skipped; a nil policy checker skips
// the policy check. In demo mode there is no database and the server reports SERVING as long as
// the policy compiles.
func NewServer(policy PolicyChecker, logger *zap.Logger, pingers ...Pinger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{policy: policy, logger: logger}
	for _, p := range pingers {
		if p != nil {
			s.pingers = append(s.pingers, p)
		}
	}
	return s
}

// Check reports SERVING when every dependency responds. Dependency failures are reported as
// NOT_SERVING rather than as a gRPC error so probes can tell "down" from "unreachable".
func (s *Server) Check(ctx context.Context, _ *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	for _, p := range s.pingers {
		if err := p.PingContext(ctx); err != nil {
			s.logger.Warn("health: ping failed", zap.Error(err))
			return notServing(), nil
		}
	}
	if s.policy != nil {
		if err := s.policy.HealthCheck(ctx); err != nil {
			s.logger.Warn("health: policy check failed", zap.Error(err))
			return notServing(), nil
		}
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}

// Watch is not supported.
func (s *Server) Watch(*healthpb.HealthCheckRequest, healthpb.Health_WatchServer) error {
	return status.Error(codes.Unimplemented, "method Watch not implemented")
}

func notServing() *healthpb.HealthCheckResponse {
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}
}
