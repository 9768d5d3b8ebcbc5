package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ghislainnkundayezu/notes-app-api/internal/apperr"
	dom "github.com/ghislainnkundayezu/notes-app-api/internal/domain"
)

// UserRepo provides user persistence.
type UserRepo interface {
	Create(ctx context.Context, username, email, passwordHash string) (dom.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (dom.User, error)
	GetByCredentials(ctx context.Context, username, email string) (dom.User, error)
	UpdateUsername(ctx context.Context, id uuid.UUID, username string) error
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db PgxPool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db PgxPool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

// Create inserts a new user and returns it. A duplicate username or
// email yields a Conflict error and leaves no record behind.
func (r *PGUserRepo) Create(ctx context.Context, username, email, passwordHash string) (dom.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, username, email, password_hash, created_at`
	var u dom.User
	err := r.db.QueryRow(ctx, query, username, email, passwordHash).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	if isUniqueViolation(err) {
		return dom.User{}, apperr.Conflict("username or email already exists")
	}
	if err != nil {
		return dom.User{}, err
	}
	return u, nil
}

// GetByID returns the user by id.
func (r *PGUserRepo) GetByID(ctx context.Context, id uuid.UUID) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.User{}, apperr.NotFound("user not found")
	}
	return u, err
}

// GetByCredentials returns the user matching both username and email.
func (r *PGUserRepo) GetByCredentials(ctx context.Context, username, email string) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE username = $1 AND email = $2`,
		username, email,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.User{}, apperr.NotFound("user not found")
	}
	return u, err
}

// UpdateUsername replaces the username. Renaming to the current value
// is a no-op success.
func (r *PGUserRepo) UpdateUsername(ctx context.Context, id uuid.UUID, username string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET username = $2 WHERE id = $1`,
		id, username,
	)
	if isUniqueViolation(err) {
		return apperr.Conflict("username already taken")
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}
