package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ghislainnkundayezu/notes-app-api/internal/apperr"
	"github.com/ghislainnkundayezu/notes-app-api/internal/cache"
	dom "github.com/ghislainnkundayezu/notes-app-api/internal/domain"
	"github.com/ghislainnkundayezu/notes-app-api/internal/repo"
)

// CategoryService handles category CRUD, always scoped to the owner.
type CategoryService struct {
	repo  repo.CategoryRepo
	notes *cache.NoteCache
}

// NewCategoryService creates a CategoryService. notes may be nil; it is
// invalidated when a category mutation can change cached note lists.
func NewCategoryService(r repo.CategoryRepo, notes *cache.NoteCache) *CategoryService {
	return &CategoryService{repo: r, notes: notes}
}

// ResolveOwned confirms that rawID names an existing category owned by
// owner and returns it. Checks run in a fixed order, each failure
// short-circuiting the rest: malformed id, then existence, then
// ownership. Owners are compared as parsed uuid values, never as
// strings.
func (s *CategoryService) ResolveOwned(ctx context.Context, rawID string, owner uuid.UUID) (dom.Category, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return dom.Category{}, apperr.InvalidIdentifier("invalid category id")
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dom.Category{}, err
	}
	if c.OwnerID != owner {
		return dom.Category{}, apperr.Unauthorized("you are not authorized to perform this action")
	}
	return c, nil
}

// Create adds a category for the owner.
func (s *CategoryService) Create(ctx context.Context, owner uuid.UUID, label string) (dom.Category, error) {
	return s.repo.Create(ctx, dom.Category{
		Label:   strings.ToLower(strings.TrimSpace(label)),
		OwnerID: owner,
	})
}

// List returns the owner's categories; an empty result is not an error.
func (s *CategoryService) List(ctx context.Context, owner uuid.UUID) ([]dom.Category, error) {
	return s.repo.ListByOwner(ctx, owner)
}

// Rename replaces the label of the owner's category. Zero rows matched
// means the category vanished between validation and write.
func (s *CategoryService) Rename(ctx context.Context, owner, id uuid.UUID, label string) error {
	label = strings.ToLower(strings.TrimSpace(label))
	matched, err := s.repo.UpdateLabel(ctx, id, owner, label)
	if err != nil {
		return err
	}
	if matched == 0 {
		return apperr.NotFound("category not found")
	}
	return nil
}

// Delete removes the owner's category after detaching it from every
// note referencing it. After this returns no note of the owner points
// at the deleted id.
func (s *CategoryService) Delete(ctx context.Context, owner, id uuid.UUID) error {
	deleted, err := s.repo.DeleteWithDetach(ctx, id, owner)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperr.NotFound("category not found")
	}
	s.invalidateNotes(ctx, owner)
	return nil
}

func (s *CategoryService) invalidateNotes(ctx context.Context, owner uuid.UUID) {
	if s.notes != nil {
		_ = s.notes.Invalidate(ctx, owner)
	}
}
