package comments

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var commentColumns = []string{"id", "post_id", "author", "email", "content", "created_at", "parent_id"}

func TestPG_GetByPostID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	at := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)FROM\s+comments\s+WHERE\s+post_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+ASC,\s+seq\s+ASC$`).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(commentColumns).
			AddRow("c1", "p1", "A", "", "hi", at, nil).
			AddRow("c2", "p1", "B", "b@x", "re", at, "c1"))

	got, err := repo.GetByPostID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ParentID != nil || got[1].ParentID == nil || *got[1].ParentID != "c1" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPG_GetByPostID_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+comments`).WillReturnError(errors.New("timeout"))

	if _, err := repo.GetByPostID(context.Background(), "p1"); !errors.Is(err, common.ErrStorage) {
		t.Fatalf("want ErrStorage, got %v", err)
	}
}

func TestPG_GetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+comments\s+WHERE\s+id\s*=\s*\$1`).WithArgs("x").WillReturnError(sql.ErrNoRows)

	got, err := repo.GetByID(context.Background(), "x")
	if err != nil || got != nil {
		t.Fatalf("want (nil, nil), got (%v, %v)", got, err)
	}
}

func TestPG_Create_NullParent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	at := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+comments\b`).
		WithArgs("c1", "p1", "A", "", "hi", at, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &models.Comment{ID: "c1", PostID: "p1", Author: "A", Content: "hi", CreatedAt: at})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPG_Delete_Missing(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE FROM comments WHERE id = \$1$`).WithArgs("x").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "x"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
