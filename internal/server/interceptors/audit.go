package interceptors

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"bookingdesk/backend/internal/audit"
	auditdomain "bookingdesk/backend/internal/audit/domain"
)

// auditMetadata is the JSON stored in audit_logs.metadata for RPC entries.
type auditMetadata struct {
	Screen     string `json:"screen,omitempty"`
	StatusCode string `json:"status_code"`
}

// AuditUnary returns a unary server interceptor that records an audit log entry after each RPC.
// skipMethods is the set of full method names to not audit (e.g. health checks).
// Writes are best-effort and only happen for authenticated calls (org_id set). A nil logger
// disables auditing.
func AuditUnary(logger audit.AuditLogger, skipMethods map[string]bool) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		if logger == nil || skipMethods[info.FullMethod] {
			return resp, err
		}
		orgID, _ := GetOrgID(ctx)
		if orgID == "" {
			return resp, err
		}
		userID, _ := GetUserID(ctx)
		ar := audit.ParseFullMethod(info.FullMethod)
		meta, _ := json.Marshal(auditMetadata{Screen: requestScreen(req), StatusCode: status.Code(err).String()})
		logger.LogEvent(ctx, audit.Event{
			OrgID:    orgID,
			UserID:   userID,
			Action:   ar.Action,
			Resource: ar.Resource,
			Severity: auditdomain.SeverityLow,
			Metadata: string(meta),
		})
		return resp, err
	}
}
