package repo

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/ghislainnkundayezu/notes-app-api/internal/apperr"
)

var userCols = []string{"id", "username", "email", "password_hash", "created_at"}

func TestUserRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("alice", "alice@example.com", "hash").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(id, "alice", "alice@example.com", "hash", now))

	u, err := NewPGUserRepo(mock).Create(context.Background(), "alice", "alice@example.com", "hash")
	require.NoError(t, err)
	require.Equal(t, id, u.ID)
	require.Equal(t, "alice", u.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_CreateDuplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("alice", "alice@example.com", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err = NewPGUserRepo(mock).Create(context.Background(), "alice", "alice@example.com", "hash")
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, apperr.KindConflict, ae.Kind)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByIDMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1`)).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err = NewPGUserRepo(mock).GetByID(context.Background(), id)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, apperr.KindNotFound, ae.Kind)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByCredentials(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE username = $1 AND email = $2`)).
		WithArgs("alice", "alice@example.com").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(id, "alice", "alice@example.com", "hash", time.Now()))

	u, err := NewPGUserRepo(mock).GetByCredentials(context.Background(), "alice", "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "hash", u.PasswordHash)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_UpdateUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET username = $2 WHERE id = $1`)).
		WithArgs(id, "bob").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, NewPGUserRepo(mock).UpdateUsername(context.Background(), id, "bob"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_UpdateUsernameTaken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET username = $2`)).
		WithArgs(id, "bob").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	err = NewPGUserRepo(mock).UpdateUsername(context.Background(), id, "bob")
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, apperr.KindConflict, ae.Kind)
	require.NoError(t, mock.ExpectationsWereMet())
}
