package service

import (
	"context"
	"html"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/ghislainnkundayezu/notes-app-api/internal/apperr"
	"github.com/ghislainnkundayezu/notes-app-api/internal/cache"
	dom "github.com/ghislainnkundayezu/notes-app-api/internal/domain"
	"github.com/ghislainnkundayezu/notes-app-api/internal/repo"
)

// updatableFields is the whitelist the field-update dispatcher accepts.
var updatableFields = map[string]bool{
	"title":    true,
	"details":  true,
	"category": true,
	"status":   true,
}

// NoteService handles note CRUD and the field-update dispatch, always
// scoped to the owner.
type NoteService struct {
	repo       repo.NoteRepo
	categories *CategoryService
	cache      *cache.NoteCache
	sf         singleflight.Group
}

// NewNoteService creates a NoteService. If c is nil, caching is
// disabled.
func NewNoteService(r repo.NoteRepo, categories *CategoryService, c *cache.NoteCache) *NoteService {
	return &NoteService{repo: r, categories: categories, cache: c}
}

// ResolveOwned confirms that rawID names an existing note owned by
// owner and returns it. Same ordering as category resolution: malformed
// id, then existence, then ownership, each failure short-circuiting the
// rest. Owners are compared as parsed uuid values.
func (s *NoteService) ResolveOwned(ctx context.Context, rawID string, owner uuid.UUID) (dom.Note, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return dom.Note{}, apperr.InvalidIdentifier("invalid note id")
	}
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dom.Note{}, err
	}
	if n.OwnerID != owner {
		return dom.Note{}, apperr.Unauthorized("you are not authorized to perform this action")
	}
	return n, nil
}

// Create adds a note for the owner. When rawCategoryID is non-empty the
// category must exist and belong to the same owner; otherwise nothing
// is persisted.
func (s *NoteService) Create(ctx context.Context, owner uuid.UUID, title, details, rawCategoryID string) (dom.Note, error) {
	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return dom.Note{}, apperr.InvalidValue("a note must have a title")
	}

	n := dom.Note{
		Title:   title,
		Details: html.EscapeString(strings.TrimSpace(details)),
		Status:  dom.StatusOngoing,
		OwnerID: owner,
	}
	if strings.TrimSpace(rawCategoryID) != "" {
		c, err := s.categories.ResolveOwned(ctx, rawCategoryID, owner)
		if err != nil {
			return dom.Note{}, err
		}
		n.CategoryID = &c.ID
	}

	out, err := s.repo.Create(ctx, n)
	if err != nil {
		return dom.Note{}, err
	}
	s.invalidate(ctx, owner)
	return out, nil
}

// List returns the owner's notes, optionally narrowed by category and
// title search. Results are cached per owner and filter variant.
func (s *NoteService) List(ctx context.Context, owner uuid.UUID, f repo.NoteFilter) ([]dom.Note, error) {
	if s.cache == nil {
		return s.repo.ListByOwner(ctx, owner, f)
	}
	key := cache.ListKey(owner, filterVariant(f))
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if list, err := s.cache.GetList(ctx, key); err == nil && list != nil {
			return list, nil
		}
		list, err := s.repo.ListByOwner(ctx, owner, f)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetList(ctx, key, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Note), nil
}

// UpdateField applies one whitelisted field update to the owner's note.
// Order: field whitelist, note ownership, field-specific validation,
// then a single owner-scoped conditional write. Re-writing the current
// value succeeds; zero rows matched on the final write means the note
// vanished or changed hands after validation and reports NotFound.
func (s *NoteService) UpdateField(ctx context.Context, owner uuid.UUID, rawNoteID, field, newValue string) error {
	field = strings.ToLower(strings.TrimSpace(field))
	if !updatableFields[field] {
		return apperr.InvalidField("field " + field + " cannot be updated")
	}

	note, err := s.ResolveOwned(ctx, rawNoteID, owner)
	if err != nil {
		return err
	}

	var value any
	switch field {
	case "status":
		st, ok := dom.ParseStatus(newValue)
		if !ok {
			return apperr.InvalidValue("status must be ongoing or finished")
		}
		value = string(st)
	case "category":
		if strings.TrimSpace(newValue) == "" {
			value = (*uuid.UUID)(nil) // clear the reference
		} else {
			c, err := s.categories.ResolveOwned(ctx, newValue, owner)
			if err != nil {
				return err
			}
			value = &c.ID
		}
	case "title":
		title := strings.ToLower(strings.TrimSpace(newValue))
		if title == "" {
			return apperr.InvalidValue("a note title cannot be empty")
		}
		value = title
	case "details":
		value = html.EscapeString(strings.TrimSpace(newValue))
	}

	matched, err := s.repo.UpdateField(ctx, note.ID, owner, field, value)
	if err != nil {
		return err
	}
	if matched == 0 {
		return apperr.NotFound("note not found")
	}
	s.invalidate(ctx, owner)
	return nil
}

// Delete removes the owner's note.
func (s *NoteService) Delete(ctx context.Context, owner, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id, owner)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperr.NotFound("note not found")
	}
	s.invalidate(ctx, owner)
	return nil
}

func (s *NoteService) invalidate(ctx context.Context, owner uuid.UUID) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, owner)
	}
}

func filterVariant(f repo.NoteFilter) string {
	switch {
	case f.CategoryID != nil && f.Search != "":
		return "cat:" + f.CategoryID.String() + ":q:" + f.Search
	case f.CategoryID != nil:
		return "cat:" + f.CategoryID.String()
	case f.Search != "":
		return "q:" + f.Search
	default:
		return "all"
	}
}
