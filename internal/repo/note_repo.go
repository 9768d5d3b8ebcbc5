package repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ghislainnkundayezu/notes-app-api/internal/apperr"
	dom "github.com/ghislainnkundayezu/notes-app-api/internal/domain"
)

// NoteFilter narrows a note list query.
type NoteFilter struct {
	CategoryID *uuid.UUID
	Search     string
}

// NoteRepo provides note persistence.
type NoteRepo interface {
	Create(ctx context.Context, n dom.Note) (dom.Note, error)
	GetByID(ctx context.Context, id uuid.UUID) (dom.Note, error)
	ListByOwner(ctx context.Context, owner uuid.UUID, f NoteFilter) ([]dom.Note, error)
	UpdateField(ctx context.Context, id, owner uuid.UUID, field string, value any) (int64, error)
	Delete(ctx context.Context, id, owner uuid.UUID) (int64, error)
}

// noteColumns maps updatable field names to their columns. Only fields
// in this map ever reach UpdateField.
var noteColumns = map[string]string{
	"title":    "title",
	"details":  "details",
	"category": "category_id",
	"status":   "status",
}

// PGNoteRepo implements NoteRepo with Postgres.
type PGNoteRepo struct {
	db PgxPool
}

// NewPGNoteRepo returns a new PGNoteRepo.
func NewPGNoteRepo(db PgxPool) *PGNoteRepo {
	return &PGNoteRepo{db: db}
}

func (r *PGNoteRepo) Create(ctx context.Context, n dom.Note) (dom.Note, error) {
	query := `
		INSERT INTO notes (title, details, status, category_id, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, details, status, category_id, owner_id, created_at`
	var out dom.Note
	err := r.db.QueryRow(ctx, query, n.Title, n.Details, string(n.Status), n.CategoryID, n.OwnerID).Scan(
		&out.ID, &out.Title, &out.Details, &out.Status, &out.CategoryID, &out.OwnerID, &out.CreatedAt,
	)
	return out, err
}

// GetByID looks a note up by id alone, without an owner filter.
func (r *PGNoteRepo) GetByID(ctx context.Context, id uuid.UUID) (dom.Note, error) {
	var n dom.Note
	err := r.db.QueryRow(ctx,
		`SELECT id, title, details, status, category_id, owner_id, created_at FROM notes WHERE id = $1`,
		id,
	).Scan(&n.ID, &n.Title, &n.Details, &n.Status, &n.CategoryID, &n.OwnerID, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.Note{}, apperr.NotFound("note not found")
	}
	return n, err
}

func (r *PGNoteRepo) ListByOwner(ctx context.Context, owner uuid.UUID, f NoteFilter) ([]dom.Note, error) {
	query := `
		SELECT id, title, details, status, category_id, owner_id, created_at
		FROM notes WHERE owner_id = $1`
	args := []any{owner}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		query += ` AND category_id = $` + strconv.Itoa(len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += ` AND title ILIKE $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Note
	for rows.Next() {
		var n dom.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Details, &n.Status, &n.CategoryID, &n.OwnerID, &n.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// UpdateField sets one column on the one note matching id and owner and
// returns the number of rows matched. Zero means the note vanished or
// changed hands since validation; writing the current value again still
// counts as matched.
func (r *PGNoteRepo) UpdateField(ctx context.Context, id, owner uuid.UUID, field string, value any) (int64, error) {
	col, ok := noteColumns[field]
	if !ok {
		return 0, fmt.Errorf("unknown note field %q", field)
	}
	tag, err := r.db.Exec(ctx,
		fmt.Sprintf(`UPDATE notes SET %s = $3 WHERE id = $1 AND owner_id = $2`, col),
		id, owner, value,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PGNoteRepo) Delete(ctx context.Context, id, owner uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM notes WHERE id = $1 AND owner_id = $2`,
		id, owner,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
