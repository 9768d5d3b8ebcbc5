package repo

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/ghislainnkundayezu/notes-app-api/internal/apperr"
	dom "github.com/ghislainnkundayezu/notes-app-api/internal/domain"
)

var noteCols = []string{"id", "title", "details", "status", "category_id", "owner_id", "created_at"}

func TestNoteRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	owner := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO notes`)).
		WithArgs("groceries", "milk and eggs", "ongoing", (*uuid.UUID)(nil), owner).
		WillReturnRows(pgxmock.NewRows(noteCols).
			AddRow(id, "groceries", "milk and eggs", dom.StatusOngoing, (*uuid.UUID)(nil), owner, time.Now()))

	n, err := NewPGNoteRepo(mock).Create(context.Background(), dom.Note{
		Title:   "groceries",
		Details: "milk and eggs",
		Status:  dom.StatusOngoing,
		OwnerID: owner,
	})
	require.NoError(t, err)
	require.Equal(t, id, n.ID)
	require.Equal(t, dom.StatusOngoing, n.Status)
	require.Nil(t, n.CategoryID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepo_GetByIDMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM notes WHERE id = $1`)).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err = NewPGNoteRepo(mock).GetByID(context.Background(), id)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, apperr.KindNotFound, ae.Kind)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepo_UpdateField(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	owner := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE notes SET status = $3 WHERE id = $1 AND owner_id = $2`)).
		WithArgs(id, owner, "finished").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	matched, err := NewPGNoteRepo(mock).UpdateField(context.Background(), id, owner, "status", "finished")
	require.NoError(t, err)
	require.EqualValues(t, 1, matched)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepo_UpdateFieldMapsCategoryColumn(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	owner := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE notes SET category_id = $3 WHERE id = $1 AND owner_id = $2`)).
		WithArgs(id, owner, (*uuid.UUID)(nil)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	matched, err := NewPGNoteRepo(mock).UpdateField(context.Background(), id, owner, "category", (*uuid.UUID)(nil))
	require.NoError(t, err)
	require.EqualValues(t, 1, matched)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepo_UpdateFieldRejectsUnknownColumn(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	_, err = NewPGNoteRepo(mock).UpdateField(context.Background(), uuid.New(), uuid.New(), "owner_id", "x")
	require.Error(t, err)
	// Nothing may reach the database for a column outside the map.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepo_ListByOwnerWithFilters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	owner := uuid.New()
	catID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE owner_id = $1 AND category_id = $2 AND title ILIKE $3`)).
		WithArgs(owner, catID, "%milk%").
		WillReturnRows(pgxmock.NewRows(noteCols).
			AddRow(uuid.New(), "buy milk", "", dom.StatusOngoing, &catID, owner, time.Now()))

	list, err := NewPGNoteRepo(mock).ListByOwner(context.Background(), owner, NoteFilter{
		CategoryID: &catID,
		Search:     "milk",
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "buy milk", list[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepo_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	owner := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM notes WHERE id = $1 AND owner_id = $2`)).
		WithArgs(id, owner).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	deleted, err := NewPGNoteRepo(mock).Delete(context.Background(), id, owner)
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}
