package fixture

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"bookingdesk/backend/internal/filter"
	"bookingdesk/backend/internal/source"
)

func TestInsertStatement(t *testing.T) {
	query, args := insertStatement(source.CollectionMessages, filter.Record{"subject": "Hi", "id": "m1", "body": "x"})
	want := "INSERT INTO messages (body, id, subject) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
	if len(args) != 3 || args[0] != "x" || args[1] != "m1" || args[2] != "Hi" {
		t.Errorf("args = %v", args)
	}
}

func TestDataset_Seed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	d := Demo(fixedNow)
	want := 0
	mock.ExpectBegin()
	for _, c := range source.Collections() {
		for range d.Records(c, "") {
			mock.ExpectExec(regexp.QuoteMeta("INSERT INTO " + string(c) + " (")).
				WillReturnResult(sqlmock.NewResult(0, 1))
			want++
		}
	}
	mock.ExpectCommit()

	n, err := d.Seed(context.Background(), db)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if n != want {
		t.Errorf("inserted = %d, want %d", n, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestDataset_SeedRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO").WillReturnError(errors.New("relation does not exist"))
	mock.ExpectRollback()

	if _, err := Demo(fixedNow).Seed(context.Background(), db); err == nil {
		t.Fatal("Seed should fail when an insert fails")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
