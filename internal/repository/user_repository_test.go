package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestUserCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		`INSERT INTO users (username, password_hash, superuser, disabled) VALUES ($1, $2, $3, $4) RETURNING id`,
	)).
		WithArgs("alice", "hash", false, false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	user := &models.User{Username: "alice", PasswordHash: "hash"}
	err := repo.Create(context.Background(), user)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreate_UniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		`INSERT INTO users (username, password_hash, superuser, disabled) VALUES ($1, $2, $3, $4) RETURNING id`,
	)).
		WithArgs("alice", "hash", false, false).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &models.User{Username: "alice", PasswordHash: "hash"})

	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestUserGetByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "superuser", "disabled"}).
		AddRow(int64(1), "alice", "hash", true, false)
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, username, password_hash, superuser, disabled FROM users WHERE username = $1`,
	)).
		WithArgs("alice").
		WillReturnRows(rows)

	user, err := repo.GetByUsername(context.Background(), "alice")

	assert.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.True(t, user.Superuser)
}

func TestUserGetByUsername_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, username, password_hash, superuser, disabled FROM users WHERE username = $1`,
	)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "superuser", "disabled"}))

	_, err := repo.GetByUsername(context.Background(), "ghost")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUserList_FilterSharedByCountAndPage(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	superuser := true
	filter := UserFilter{Superuser: &superuser}

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT COUNT(*) FROM users WHERE superuser = $1`,
	)).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "superuser", "disabled"}).
		AddRow(int64(1), "root", "hash", true, false)
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, username, password_hash, superuser, disabled FROM users WHERE superuser = $1 ORDER BY id OFFSET $2 LIMIT $3`,
	)).
		WithArgs(true, 0, 10).
		WillReturnRows(rows)

	users, total, err := repo.List(context.Background(), filter, 0, 10)

	assert.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, users, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdate_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE users SET username = $1, superuser = $2, disabled = $3 WHERE id = $4`,
	)).
		WithArgs("bob", false, false, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.User{ID: 42, Username: "bob"})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUserDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), 2)

	assert.NoError(t, err)
}
