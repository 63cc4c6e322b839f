package fixture

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"bookingdesk/backend/internal/filter"
	"bookingdesk/backend/internal/source"
)

// Seed inserts the dataset into the tables created by internal/db/migrations, one transaction
// for all collections. Rows that already exist are left untouched, so Seed can be re-run.
// It returns the number of rows inserted.
func (d Dataset) Seed(ctx context.Context, db *sql.DB) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	inserted := 0
	for _, c := range source.Collections() {
		for _, rec := range d.Records(c, "") {
			query, args := insertStatement(c, rec)
			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return 0, fmt.Errorf("seed: insert %s %s: %w", c, rec.ID(), err)
			}
			if n, err := res.RowsAffected(); err == nil {
				inserted += int(n)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed: commit: %w", err)
	}
	return inserted, nil
}

// insertStatement builds an idempotent insert for rec. Columns are sorted so statements are
// stable; the table name comes from the closed collection set.
func insertStatement(c source.Collection, rec filter.Record) (string, []any) {
	cols := make([]string, 0, len(rec))
	for k := range rec {
		cols = append(cols, k)
	}
	sort.Strings(cols)

	args := make([]any, len(cols))
	marks := make([]string, len(cols))
	for i, col := range cols {
		args[i] = rec[col]
		marks[i] = "$" + strconv.Itoa(i+1)
	}
	query := "INSERT INTO " + string(c) + " (" + strings.Join(cols, ", ") + ") VALUES (" +
		strings.Join(marks, ", ") + ") ON CONFLICT (id) DO NOTHING"
	return query, args
}
