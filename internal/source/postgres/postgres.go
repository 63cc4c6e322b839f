// Package postgres fetches record collections from the Postgres schema in internal/db/migrations.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"bookingdesk/backend/internal/filter"
	"bookingdesk/backend/internal/source"
)

// Source reads whole collections as generic records. Table names come from the closed
// source.Collection set, never from caller input.
type Source struct {
	db *sql.DB
}

// New returns a Source backed by db.
func New(db *sql.DB) *Source {
	return &Source{db: db}
}

// Fetch returns every row of the collection's table for the org, oldest first.
// NULL columns are left out of the record.
func (s *Source) Fetch(ctx context.Context, req source.Request) (source.Response, error) {
	if err := req.Validate(); err != nil {
		return source.Response{}, err
	}
	query, args := selectQuery(req)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return source.Response{}, fmt.Errorf("postgres: select %s: %w", req.Collection, err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return source.Response{}, fmt.Errorf("postgres: scan %s: %w", req.Collection, err)
	}
	return source.Response{Records: records, Origin: source.OriginLive}, nil
}

func selectQuery(req source.Request) (string, []any) {
	table := string(req.Collection)
	if req.Collection.TenantScoped() {
		return "SELECT * FROM " + table + " WHERE org_id = $1 ORDER BY created_at, id", []any{req.OrgID}
	}
	return "SELECT * FROM " + table + " ORDER BY created_at, id", nil
}

func scanRecords(rows *sql.Rows) ([]filter.Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	out := make([]filter.Record, 0)
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		rec := make(filter.Record, len(cols))
		for i, col := range cols {
			switch v := vals[i].(type) {
			case nil:
			case []byte:
				rec[col] = string(v)
			default:
				rec[col] = v
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
