package repository

import (
	"context"
	"database/sql"
	"errors"

	"bookingdesk/backend/internal/membership/domain"
)

const memberColumns = "id, user_id, org_id, name, email, role, status, created_at"

// PostgresRepository stores memberships in the team_members table.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a membership repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetMembershipByUserAndOrg returns the membership for the given user and org, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetMembershipByUserAndOrg(ctx context.Context, userID, orgID string) (*domain.Membership, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+memberColumns+" FROM team_members WHERE user_id = $1 AND org_id = $2", userID, orgID)
	m, err := scanMembership(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// ListMembershipsByOrg returns all memberships for the given org. Returns (nil, error) only on database errors.
func (r *PostgresRepository) ListMembershipsByOrg(ctx context.Context, orgID string) ([]*domain.Membership, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+memberColumns+" FROM team_members WHERE org_id = $1 ORDER BY created_at, id", orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// CreateMembership persists the membership. The membership must have ID set; an existing row with
// the same ID is left unchanged.
func (r *PostgresRepository) CreateMembership(ctx context.Context, m *domain.Membership) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO team_members ("+memberColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8) ON CONFLICT (id) DO NOTHING",
		m.ID, m.UserID, m.OrgID, m.Name, m.Email, string(m.Role), string(m.Status), m.CreatedAt)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMembership(s scanner) (*domain.Membership, error) {
	var (
		m            domain.Membership
		role, status string
	)
	if err := s.Scan(&m.ID, &m.UserID, &m.OrgID, &m.Name, &m.Email, &role, &status, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.Role = domain.Role(role)
	m.Status = domain.Status(status)
	return &m, nil
}
