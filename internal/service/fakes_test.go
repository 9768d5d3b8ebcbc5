package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghislainnkundayezu/notes-app-api/internal/apperr"
	dom "github.com/ghislainnkundayezu/notes-app-api/internal/domain"
	"github.com/ghislainnkundayezu/notes-app-api/internal/repo"
)

// In-memory repo doubles. They record enough call detail for the tests
// to assert what reached the persistence layer.

type fakeUserRepo struct {
	users       map[uuid.UUID]dom.User
	createdHash string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]dom.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, username, email, passwordHash string) (dom.User, error) {
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			return dom.User{}, apperr.Conflict("username or email already exists")
		}
	}
	u := dom.User{ID: uuid.New(), Username: username, Email: email, PasswordHash: passwordHash}
	f.users[u.ID] = u
	f.createdHash = passwordHash
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (dom.User, error) {
	u, ok := f.users[id]
	if !ok {
		return dom.User{}, apperr.NotFound("user not found")
	}
	return u, nil
}

func (f *fakeUserRepo) GetByCredentials(_ context.Context, username, email string) (dom.User, error) {
	for _, u := range f.users {
		if u.Username == username && u.Email == email {
			return u, nil
		}
	}
	return dom.User{}, apperr.NotFound("user not found")
}

func (f *fakeUserRepo) UpdateUsername(_ context.Context, id uuid.UUID, username string) error {
	u, ok := f.users[id]
	if !ok {
		return apperr.NotFound("user not found")
	}
	u.Username = username
	f.users[id] = u
	return nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]dom.Category
	getCalls   int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[uuid.UUID]dom.Category{}}
}

func (f *fakeCategoryRepo) Create(_ context.Context, c dom.Category) (dom.Category, error) {
	c.ID = uuid.New()
	f.categories[c.ID] = c
	return c, nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id uuid.UUID) (dom.Category, error) {
	f.getCalls++
	c, ok := f.categories[id]
	if !ok {
		return dom.Category{}, apperr.NotFound("category not found")
	}
	return c, nil
}

func (f *fakeCategoryRepo) ListByOwner(_ context.Context, owner uuid.UUID) ([]dom.Category, error) {
	var list []dom.Category
	for _, c := range f.categories {
		if c.OwnerID == owner {
			list = append(list, c)
		}
	}
	return list, nil
}

func (f *fakeCategoryRepo) UpdateLabel(_ context.Context, id, owner uuid.UUID, label string) (int64, error) {
	c, ok := f.categories[id]
	if !ok || c.OwnerID != owner {
		return 0, nil
	}
	c.Label = label
	f.categories[id] = c
	return 1, nil
}

func (f *fakeCategoryRepo) DeleteWithDetach(_ context.Context, id, owner uuid.UUID) (int64, error) {
	c, ok := f.categories[id]
	if !ok || c.OwnerID != owner {
		return 0, nil
	}
	delete(f.categories, id)
	return 1, nil
}

type fakeNoteRepo struct {
	notes map[uuid.UUID]dom.Note

	getCalls    int
	listCalls   int
	updateCalls int
	lastField   string
	lastValue   any
	matched     int64 // forced result for UpdateField when >= 0
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: map[uuid.UUID]dom.Note{}, matched: -1}
}

func (f *fakeNoteRepo) Create(_ context.Context, n dom.Note) (dom.Note, error) {
	n.ID = uuid.New()
	f.notes[n.ID] = n
	return n, nil
}

func (f *fakeNoteRepo) GetByID(_ context.Context, id uuid.UUID) (dom.Note, error) {
	f.getCalls++
	n, ok := f.notes[id]
	if !ok {
		return dom.Note{}, apperr.NotFound("note not found")
	}
	return n, nil
}

func (f *fakeNoteRepo) ListByOwner(_ context.Context, owner uuid.UUID, filter repo.NoteFilter) ([]dom.Note, error) {
	f.listCalls++
	var list []dom.Note
	for _, n := range f.notes {
		if n.OwnerID != owner {
			continue
		}
		if filter.CategoryID != nil && (n.CategoryID == nil || *n.CategoryID != *filter.CategoryID) {
			continue
		}
		list = append(list, n)
	}
	return list, nil
}

func (f *fakeNoteRepo) UpdateField(_ context.Context, id, owner uuid.UUID, field string, value any) (int64, error) {
	f.updateCalls++
	f.lastField = field
	f.lastValue = value
	if f.matched >= 0 {
		return f.matched, nil
	}
	n, ok := f.notes[id]
	if !ok || n.OwnerID != owner {
		return 0, nil
	}
	return 1, nil
}

func (f *fakeNoteRepo) Delete(_ context.Context, id, owner uuid.UUID) (int64, error) {
	n, ok := f.notes[id]
	if !ok || n.OwnerID != owner {
		return 0, nil
	}
	delete(f.notes, id)
	return 1, nil
}
