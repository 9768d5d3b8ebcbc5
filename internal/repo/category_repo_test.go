package repo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	dom "github.com/ghislainnkundayezu/notes-app-api/internal/domain"
)

var categoryCols = []string{"id", "label", "owner_id", "created_at"}

func TestCategoryRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	owner := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO categories`)).
		WithArgs("work", owner).
		WillReturnRows(pgxmock.NewRows(categoryCols).AddRow(id, "work", owner, time.Now()))

	c, err := NewPGCategoryRepo(mock).Create(context.Background(), dom.Category{Label: "work", OwnerID: owner})
	require.NoError(t, err)
	require.Equal(t, id, c.ID)
	require.Equal(t, owner, c.OwnerID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepo_UpdateLabel(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	owner := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE categories SET label = $3 WHERE id = $1 AND owner_id = $2`)).
		WithArgs(id, owner, "personal").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	matched, err := NewPGCategoryRepo(mock).UpdateLabel(context.Background(), id, owner, "personal")
	require.NoError(t, err)
	require.EqualValues(t, 1, matched)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepo_DeleteWithDetach(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	owner := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE notes SET category_id = NULL WHERE owner_id = $2 AND category_id = $1`)).
		WithArgs(id, owner).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM categories WHERE id = $1 AND owner_id = $2`)).
		WithArgs(id, owner).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	deleted, err := NewPGCategoryRepo(mock).DeleteWithDetach(context.Background(), id, owner)
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepo_DeleteWithDetachRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	owner := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE notes SET category_id = NULL`)).
		WithArgs(id, owner).
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	_, err = NewPGCategoryRepo(mock).DeleteWithDetach(context.Background(), id, owner)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepo_ListByOwner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	owner := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM categories WHERE owner_id = $1`)).
		WithArgs(owner).
		WillReturnRows(pgxmock.NewRows(categoryCols).
			AddRow(uuid.New(), "work", owner, time.Now()).
			AddRow(uuid.New(), "personal", owner, time.Now()))

	list, err := NewPGCategoryRepo(mock).ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "work", list[0].Label)
	require.NoError(t, mock.ExpectationsWereMet())
}
