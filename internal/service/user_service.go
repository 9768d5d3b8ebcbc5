package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ghislainnkundayezu/notes-app-api/internal/apperr"
	dom "github.com/ghislainnkundayezu/notes-app-api/internal/domain"
	"github.com/ghislainnkundayezu/notes-app-api/internal/repo"
)

// UserService handles registration, credential checks and profile
// updates.
type UserService struct {
	repo repo.UserRepo
}

// NewUserService returns a new UserService.
func NewUserService(repo repo.UserRepo) *UserService {
	return &UserService{repo: repo}
}

// Register creates a new user. The password is hashed exactly once
// here; the clear form is never stored. A duplicate username or email
// surfaces as Conflict and creates nothing.
func (s *UserService) Register(ctx context.Context, username, email, password string) (dom.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return dom.User{}, err
	}
	return s.repo.Create(ctx, username, email, string(hash))
}

// Authenticate checks the credentials and returns the user. Every
// failure mode is reported the same way so a caller cannot probe which
// credential was wrong.
func (s *UserService) Authenticate(ctx context.Context, username, email, password string) (dom.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.GetByCredentials(ctx, username, email)
	if err != nil {
		if apperr.From(err).Kind == apperr.KindNotFound {
			return dom.User{}, apperr.Unauthenticated("invalid credentials")
		}
		return dom.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, apperr.Unauthenticated("invalid credentials")
	}
	return u, nil
}

// Get returns the user by id.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (dom.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Rename replaces the username. Renaming to the current value succeeds.
func (s *UserService) Rename(ctx context.Context, id uuid.UUID, username string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	return s.repo.UpdateUsername(ctx, id, username)
}
