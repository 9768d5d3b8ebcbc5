package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ghislainnkundayezu/notes-app-api/internal/apperr"
	dom "github.com/ghislainnkundayezu/notes-app-api/internal/domain"
)

// CategoryRepo provides category persistence.
type CategoryRepo interface {
	Create(ctx context.Context, c dom.Category) (dom.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (dom.Category, error)
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]dom.Category, error)
	UpdateLabel(ctx context.Context, id, owner uuid.UUID, label string) (int64, error)
	DeleteWithDetach(ctx context.Context, id, owner uuid.UUID) (int64, error)
}

// PGCategoryRepo implements CategoryRepo with Postgres.
type PGCategoryRepo struct {
	db PgxPool
}

// NewPGCategoryRepo returns a new PGCategoryRepo.
func NewPGCategoryRepo(db PgxPool) *PGCategoryRepo {
	return &PGCategoryRepo{db: db}
}

func (r *PGCategoryRepo) Create(ctx context.Context, c dom.Category) (dom.Category, error) {
	query := `
		INSERT INTO categories (label, owner_id)
		VALUES ($1, $2)
		RETURNING id, label, owner_id, created_at`
	var out dom.Category
	err := r.db.QueryRow(ctx, query, c.Label, c.OwnerID).Scan(
		&out.ID, &out.Label, &out.OwnerID, &out.CreatedAt,
	)
	return out, err
}

// GetByID looks a category up by id alone, without an owner filter, so
// existence and ownership stay distinguishable for the caller.
func (r *PGCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (dom.Category, error) {
	var c dom.Category
	err := r.db.QueryRow(ctx,
		`SELECT id, label, owner_id, created_at FROM categories WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Label, &c.OwnerID, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.Category{}, apperr.NotFound("category not found")
	}
	return c, err
}

func (r *PGCategoryRepo) ListByOwner(ctx context.Context, owner uuid.UUID) ([]dom.Category, error) {
	query := `
		SELECT id, label, owner_id, created_at
		FROM categories WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Category
	for rows.Next() {
		var c dom.Category
		if err := rows.Scan(&c.ID, &c.Label, &c.OwnerID, &c.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// UpdateLabel replaces the label of the one category matching id and
// owner, returning the number of rows matched.
func (r *PGCategoryRepo) UpdateLabel(ctx context.Context, id, owner uuid.UUID, label string) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE categories SET label = $3 WHERE id = $1 AND owner_id = $2`,
		id, owner, label,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteWithDetach clears the category reference from every note of the
// same owner and deletes the category, in one transaction. Returns the
// number of categories deleted.
func (r *PGCategoryRepo) DeleteWithDetach(ctx context.Context, id, owner uuid.UUID) (deleted int64, err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	if _, err = tx.Exec(ctx,
		`UPDATE notes SET category_id = NULL WHERE owner_id = $2 AND category_id = $1`,
		id, owner,
	); err != nil {
		return 0, err
	}
	tag, err := tx.Exec(ctx,
		`DELETE FROM categories WHERE id = $1 AND owner_id = $2`,
		id, owner,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
