package interceptors

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"bookingdesk/backend/internal/telemetry"
)

// viewRequestMetadata is the JSON shape stored in Event.Metadata for view_request events.
type viewRequestMetadata struct {
	FullMethod string `json:"full_method"`
	Screen     string `json:"screen,omitempty"`
	StatusCode string `json:"status_code"`
	DurationMs int64  `json:"duration_ms"`
	ClientIP   string `json:"client_ip"`
}

// TelemetryUnary returns a unary server interceptor that emits a view_request event after each RPC.
// Best-effort and asynchronous: failures are logged and do not fail the RPC. If emitter is nil,
// the interceptor no-ops. skipMethods is the set of full method names to not emit (e.g. health checks).
func TelemetryUnary(emitter telemetry.EventEmitter, skipMethods map[string]bool, logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if emitter == nil || skipMethods[info.FullMethod] {
			return resp, err
		}
		metaJSON, _ := json.Marshal(viewRequestMetadata{
			FullMethod: info.FullMethod,
			Screen:     requestScreen(req),
			StatusCode: status.Code(err).String(),
			DurationMs: time.Since(start).Milliseconds(),
			ClientIP:   ClientIP(ctx),
		})
		orgID, _ := GetOrgID(ctx)
		userID, _ := GetUserID(ctx)
		sessionID, _ := GetSessionID(ctx)
		telemetry.EmitAsync(emitter, &telemetry.Event{
			OrgID:     orgID,
			UserID:    userID,
			SessionID: sessionID,
			EventType: telemetry.EventViewRequest,
			Source:    "grpc_interceptor",
			Metadata:  metaJSON,
			CreatedAt: time.Now().UTC(),
		}, logger)
		return resp, err
	}
}
