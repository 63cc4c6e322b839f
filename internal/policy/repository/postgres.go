package repository

import (
	"context"
	"database/sql"
	"errors"

	"bookingdesk/backend/internal/policy/domain"
)

const policyColumns = "id, org_id, rules, enabled, created_at"

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a policy repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByID returns the policy for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Policy, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+policyColumns+" FROM access_policies WHERE id = $1", id)
	p, err := scanPolicy(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// ListByOrg returns all policies for the given org. Returns (nil, error) only on database errors.
func (r *PostgresRepository) ListByOrg(ctx context.Context, orgID string) ([]*domain.Policy, error) {
	return r.list(ctx, "SELECT "+policyColumns+" FROM access_policies WHERE org_id = $1 ORDER BY created_at, id", orgID)
}

// GetEnabledPoliciesByOrg returns the enabled policies for the org, oldest first.
func (r *PostgresRepository) GetEnabledPoliciesByOrg(ctx context.Context, orgID string) ([]*domain.Policy, error) {
	return r.list(ctx, "SELECT "+policyColumns+" FROM access_policies WHERE org_id = $1 AND enabled ORDER BY created_at, id", orgID)
}

// Create persists the policy to the database. The policy must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, p *domain.Policy) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO access_policies ("+policyColumns+") VALUES ($1, $2, $3, $4, $5)",
		p.ID, p.OrgID, p.Rules, p.Enabled, p.CreatedAt)
	return err
}

// Update updates the rules and enabled flag of an existing policy.
func (r *PostgresRepository) Update(ctx context.Context, p *domain.Policy) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE access_policies SET rules = $2, enabled = $3 WHERE id = $1",
		p.ID, p.Rules, p.Enabled)
	return err
}

func (r *PostgresRepository) list(ctx context.Context, query, orgID string) ([]*domain.Policy, error) {
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Policy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPolicy(s scanner) (*domain.Policy, error) {
	var p domain.Policy
	if err := s.Scan(&p.ID, &p.OrgID, &p.Rules, &p.Enabled, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
