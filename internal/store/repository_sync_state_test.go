// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"

	"github.com/mobilegw/go-sync-gateway/internal/logger"
	"github.com/mobilegw/go-sync-gateway/models"
)

func newTestStateRepo(t *testing.T) (*syncStateRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &syncStateRepository{
		db:  &DB{DB: db, builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar), logger: l},
		log: l,
	}
	return repo, mock, db
}

func TestGetState_Success(t *testing.T) {
	repo, mock, db := newTestStateRepo(t)
	defer db.Close()

	blob := []byte(`{"entries":[]}`)
	rows := sqlmock.NewRows([]string{"blob"}).AddRow(blob)

	mock.ExpectQuery("SELECT blob FROM sync_states").
		WithArgs("dev-1", "content", "f1", 3).
		WillReturnRows(rows)

	got, err := repo.GetState(context.Background(), "dev-1", models.ScopeContent, "f1", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(blob) {
		t.Errorf("expected blob %s, got %s", blob, got)
	}
}

func TestGetState_NotFound(t *testing.T) {
	repo, mock, db := newTestStateRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT blob FROM sync_states").
		WithArgs("dev-1", "content", "f1", 3).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetState(context.Background(), "dev-1", models.ScopeContent, "f1", 3)
	if !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound, got %v", err)
	}
}

func TestGetLatestState_Success(t *testing.T) {
	repo, mock, db := newTestStateRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"blob", "counter"}).AddRow([]byte("{}"), 7)

	mock.ExpectQuery("SELECT blob, counter FROM sync_states").
		WithArgs("dev-1", "hierarchy", "0").
		WillReturnRows(rows)

	blob, counter, err := repo.GetLatestState(context.Background(), "dev-1", models.ScopeHierarchy, "0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counter != 7 {
		t.Errorf("expected counter=7, got %d", counter)
	}
	if string(blob) != "{}" {
		t.Errorf("unexpected blob: %s", blob)
	}
}

func TestGetLatestState_NotFound(t *testing.T) {
	repo, mock, db := newTestStateRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT blob, counter FROM sync_states").
		WillReturnError(sql.ErrNoRows)

	_, _, err := repo.GetLatestState(context.Background(), "dev-1", models.ScopeHierarchy, "0")
	if !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound, got %v", err)
	}
}

func TestSetState_UpsertAndPrune(t *testing.T) {
	repo, mock, db := newTestStateRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO sync_states").
		WithArgs("dev-1", "content", "f1", 4, []byte("{}"), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Counters older than counter-1 are pruned after the upsert.
	mock.ExpectExec("DELETE FROM sync_states").
		WithArgs("dev-1", "content", "f1", 3).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.SetState(context.Background(), "dev-1", models.ScopeContent, "f1", 4, []byte("{}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSetState_DBError(t *testing.T) {
	repo, mock, db := newTestStateRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO sync_states").
		WillReturnError(errors.New("db network error"))

	err := repo.SetState(context.Background(), "dev-1", models.ScopeContent, "f1", 1, []byte("{}"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestDeleteState_Success(t *testing.T) {
	repo, mock, db := newTestStateRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM sync_states").
		WithArgs("dev-1", "content", "f1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	err := repo.DeleteState(context.Background(), "dev-1", models.ScopeContent, "f1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
