package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookingdesk/backend/internal/audit/domain"
	auditrepo "bookingdesk/backend/internal/audit/repository"
)

// IPExtractor returns the client IP from the request context (e.g. gRPC metadata or peer).
type IPExtractor func(context.Context) string

// Event is one audit entry to record. Severity defaults to low.
type Event struct {
	OrgID    string
	UserID   string
	Action   string
	Resource string
	Severity domain.Severity
	Metadata string
}

// AuditLogger writes a single audit event. LogEvent is best-effort: failures are logged and do not
// affect the caller.
type AuditLogger interface {
	LogEvent(ctx context.Context, ev Event)
}

// Logger implements AuditLogger using the audit repository and an optional IP extractor.
type Logger struct {
	repo        auditrepo.Repository
	ipExtractor IPExtractor
	logger      *zap.Logger
	now         func() time.Time
}

// NewLogger returns an AuditLogger that persists to repo and uses ipExtractor for client IP.
// ipExtractor may be nil; then IP is recorded as "unknown". logger may be nil.
func NewLogger(repo auditrepo.Repository, ipExtractor IPExtractor, logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logger{repo: repo, ipExtractor: ipExtractor, logger: logger, now: time.Now}
}

// LogEvent writes one audit log entry. Events without an org are dropped since every audit row
// belongs to a business.
func (l *Logger) LogEvent(ctx context.Context, ev Event) {
	if l == nil || l.repo == nil || ev.OrgID == "" {
		return
	}
	ip := "unknown"
	if l.ipExtractor != nil {
		ip = l.ipExtractor(ctx)
	}
	severity := ev.Severity
	if severity == "" {
		severity = domain.SeverityLow
	}
	entry := &domain.AuditLog{
		ID:        uuid.New().String(),
		OrgID:     ev.OrgID,
		UserID:    ev.UserID,
		Action:    ev.Action,
		Resource:  ev.Resource,
		Severity:  severity,
		IP:        ip,
		Metadata:  ev.Metadata,
		CreatedAt: l.now().UTC(),
	}
	if err := l.repo.Create(ctx, entry); err != nil {
		l.logger.Warn("audit: failed to log event",
			zap.String("action", ev.Action), zap.String("resource", ev.Resource), zap.Error(err))
	}
}
