package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/avolkov/StaffKeeper/internal/models"
)

func setupUserMock(t *testing.T) (*PostgresUserRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresUserRepository(db)
	return repo, mock, func() { db.Close() }
}

func TestEmailExists(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`)).
		WithArgs("ada@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "ada@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected exists to be true")
	}
}

func TestCreateUser(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	u := User{
		Identity:     models.Identity{ID: "u1", Email: "ada@x.com"},
		PasswordHash: []byte("hash"),
	}
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (id, email, display_name, password_hash)`)).
		WithArgs(u.ID, u.Email, u.DisplayName, u.PasswordHash).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestFindByEmail_Error(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT id, email, display_name, password_hash FROM users WHERE email = \$1`).
		WithArgs("ghost@x.com").
		WillReturnError(errors.New("no rows"))

	_, err := repo.FindByEmail(context.Background(), "ghost@x.com")
	if err == nil || !regexp.MustCompile(`FindByEmail`).MatchString(err.Error()) {
		t.Errorf("expected FindByEmail error, got %v", err)
	}
}

func TestFindByID_Success(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "email", "display_name", "password_hash"}).
		AddRow("u1", "ada@x.com", "Ada", []byte("hash"))

	mock.ExpectQuery(`SELECT id, email, display_name, password_hash FROM users WHERE id = \$1`).
		WithArgs("u1").
		WillReturnRows(rows)

	u, err := repo.FindByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Email != "ada@x.com" || u.DisplayName != "Ada" {
		t.Errorf("unexpected user: %+v", u)
	}
}
