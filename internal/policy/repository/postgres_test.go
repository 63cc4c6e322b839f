package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"bookingdesk/backend/internal/policy/domain"
)

var policyCols = []string{"id", "org_id", "rules", "enabled", "created_at"}

func TestPostgresRepository_GetEnabledPoliciesByOrg(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM access_policies WHERE org_id = $1 AND enabled")).
		WithArgs("org-1").
		WillReturnRows(sqlmock.NewRows(policyCols).AddRow("p1", "org-1", "package x", true, now))

	list, err := NewPostgresRepository(db).GetEnabledPoliciesByOrg(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("GetEnabledPoliciesByOrg: %v", err)
	}
	if len(list) != 1 || list[0].ID != "p1" || !list[0].Enabled {
		t.Errorf("list = %+v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM access_policies WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(policyCols))

	p, err := NewPostgresRepository(db).GetByID(context.Background(), "missing")
	if err != nil || p != nil {
		t.Errorf("GetByID = %v, %v; want nil, nil", p, err)
	}
}

func TestPostgresRepository_CreateUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	p := &domain.Policy{ID: "p1", OrgID: "org-1", Rules: "package x", Enabled: true, CreatedAt: time.Now().UTC()}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO access_policies")).
		WithArgs(p.ID, p.OrgID, p.Rules, p.Enabled, p.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE access_policies SET rules = $2, enabled = $3 WHERE id = $1")).
		WithArgs(p.ID, p.Rules, false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgresRepository(db)
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	p.Enabled = false
	if err := repo.Update(context.Background(), p); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
