package repository

import (
	"context"
	"database/sql"

	"bookingdesk/backend/internal/audit/domain"
)

const auditColumns = "id, org_id, user_id, user_name, action, resource, severity, ip, metadata, created_at"

// PostgresRepository stores audit logs in the audit_logs table.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an audit log repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByOrg returns audit logs for the given org, newest first, paginated by limit and offset.
// Returns (nil, error) only on database errors.
func (r *PostgresRepository) ListByOrg(ctx context.Context, orgID string, limit, offset int32) ([]*domain.AuditLog, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+auditColumns+" FROM audit_logs WHERE org_id = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3",
		orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*domain.AuditLog{}
	for rows.Next() {
		var (
			a               domain.AuditLog
			uid, name, meta sql.NullString
			severity        string
		)
		if err := rows.Scan(&a.ID, &a.OrgID, &uid, &name, &a.Action, &a.Resource, &severity, &a.IP, &meta, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.UserID = uid.String
		a.UserName = name.String
		a.Metadata = meta.String
		a.Severity = domain.Severity(severity)
		out = append(out, &a)
	}
	return out, rows.Err()
}

// Create persists the audit log. The audit log must have ID set; an empty severity is stored as low.
func (r *PostgresRepository) Create(ctx context.Context, a *domain.AuditLog) error {
	severity := a.Severity
	if severity == "" {
		severity = domain.SeverityLow
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO audit_logs ("+auditColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) ON CONFLICT (id) DO NOTHING",
		a.ID, a.OrgID, nullString(a.UserID), nullString(a.UserName), a.Action, a.Resource, string(severity), a.IP,
		nullString(a.Metadata), a.CreatedAt)
	return err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
