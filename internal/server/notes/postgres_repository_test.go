package notes

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/jojiiikol/notes-backend/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	insertQuery       = `(?s)^INSERT\s+INTO\s+notes\s*\(owner_id,\s*title,\s*description,\s*created_at,\s*updated_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+id\s*$`
	selectByIDQuery   = `(?s)^SELECT\s+id,\s*owner_id,\s*title,\s*description,\s*created_at,\s*updated_at\s+FROM\s+notes\s+WHERE\s+id\s*=\s*\$1\s*$`
	selectByOwnerQuery = `(?s)^SELECT\s+id,\s*owner_id,\s*title,\s*description,\s*created_at,\s*updated_at\s+FROM\s+notes\s+WHERE\s+owner_id\s*=\s*\$1\s+ORDER\s+BY\s+id\s*$`
	updateQuery       = `(?s)^UPDATE\s+notes\s+SET\s+title\s*=\s*\$1,\s*description\s*=\s*\$2,\s*updated_at\s*=\s*\$3\s+WHERE\s+id\s*=\s*\$4\s+RETURNING\s+`
)

func noteColumns() []string {
	return []string{"id", "owner_id", "title", "description", "created_at", "updated_at"}
}

func TestCreate_AssignsID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery(insertQuery).
		WithArgs(int64(1), "title", "description", now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	n := &Note{OwnerID: 1, Title: "title", Description: "description", CreatedAt: now, UpdatedAt: now}
	got, err := repo.Create(context.Background(), n)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 7 {
		t.Fatalf("unexpected id: %d", got.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(noteColumns()).
		AddRow(7, 1, "title", "description", now, now)
	mock.ExpectQuery(selectByIDQuery).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.ID != 7 || got.OwnerID != 1 || got.Title != "title" {
		t.Fatalf("unexpected note: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByIDQuery).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 42)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetByOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(noteColumns()).
		AddRow(1, 5, "first", "a", now, now).
		AddRow(3, 5, "second", "b", now, now)
	mock.ExpectQuery(selectByOwnerQuery).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	got, err := repo.GetByOwner(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetByOwner error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(got))
	}
	for _, n := range got {
		if n.OwnerID != 5 {
			t.Fatalf("unexpected owner: %+v", n)
		}
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(updateQuery).
		WithArgs("title", "description", now, int64(42)).
		WillReturnError(sql.ErrNoRows)

	n := &Note{ID: 42, Title: "title", Description: "description", UpdatedAt: now}
	_, err := repo.Update(context.Background(), n)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+notes\s+WHERE\s+id\s*=\s*\$1\s*$`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 42)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
