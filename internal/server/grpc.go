package server

import (
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	healthhandler "bookingdesk/backend/internal/health/handler"
	viewhandler "bookingdesk/backend/internal/view/handler"
)

// Deps holds service dependencies for gRPC handlers.
type Deps struct {
	// View serves the list screens. If nil, ViewService is not registered.
	View viewhandler.ViewServiceServer
	// Health serves grpc.health.v1.Health. If nil, a server with no dependency checks is used.
	Health healthpb.HealthServer
}

// PublicMethods are the full method names callable without a Bearer token. They are also
// skipped by the audit and telemetry interceptors.
func PublicMethods() map[string]bool {
	return map[string]bool{
		healthpb.Health_Check_FullMethodName: true,
		healthpb.Health_Watch_FullMethodName: true,
	}
}

// RegisterServices registers all gRPC services with the given server.
//
// Service → handler mapping:
//   - bookingdesk.view.v1.ViewService → internal/view/handler
//   - grpc.health.v1.Health           → internal/health/handler
func RegisterServices(s grpc.ServiceRegistrar, deps Deps) {
	if deps.View != nil {
		viewhandler.RegisterViewServiceServer(s, deps.View)
	}
	health := deps.Health
	if health == nil {
		health = healthhandler.NewServer(nil, nil)
	}
	healthpb.RegisterHealthServer(s, health)
}
