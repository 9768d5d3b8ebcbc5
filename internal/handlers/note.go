package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	dom "github.com/ghislainnkundayezu/notes-app-api/internal/domain"
	"github.com/ghislainnkundayezu/notes-app-api/internal/dto"
	"github.com/ghislainnkundayezu/notes-app-api/internal/repo"
	"github.com/ghislainnkundayezu/notes-app-api/internal/validate"
)

// NoteService is the slice of the note service the handlers need.
type NoteService interface {
	ResolveOwned(ctx context.Context, rawID string, owner uuid.UUID) (dom.Note, error)
	Create(ctx context.Context, owner uuid.UUID, title, details, rawCategoryID string) (dom.Note, error)
	List(ctx context.Context, owner uuid.UUID, f repo.NoteFilter) ([]dom.Note, error)
	UpdateField(ctx context.Context, owner uuid.UUID, rawNoteID, field, newValue string) error
	Delete(ctx context.Context, owner, id uuid.UUID) error
}

// NoteHandler handles note CRUD and field updates.
type NoteHandler struct {
	svc        NoteService
	categories CategoryService
}

// NewNoteHandler returns a new NoteHandler.
func NewNoteHandler(svc NoteService, categories CategoryService) *NoteHandler {
	return &NoteHandler{svc: svc, categories: categories}
}

// ownedCategory is the chain predicate checking id format, existence
// and ownership, in that order. The resolved category lands in out so
// the handler never has to parse the id a second time.
func (h *NoteHandler) ownedCategory(owner uuid.UUID, out *dom.Category) validate.Func {
	return func(ctx context.Context, v string) error {
		c, err := h.categories.ResolveOwned(ctx, v, owner)
		if err != nil {
			return err
		}
		*out = c
		return nil
	}
}

// Create godoc
// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body  dto.CreateNoteRequest  true  "Note body"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	ident, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(malformedBody())
		return
	}
	err := validate.Run(c.Request.Context(),
		validate.NewField("title", req.Title).
			Required("a note must have a title"),
	)
	if err != nil {
		_ = c.Error(err)
		return
	}
	note, err := h.svc.Create(c.Request.Context(), ident.UserID, req.Title, req.Details, req.CategoryID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK("a note was successfully created", dto.NoteToResponse(note)))
}

// Get godoc
// @Summary      Get a note by ID
// @Tags         notes
// @Produce      json
// @Security     CookieAuth
// @Param        noteId  path  string  true  "Note ID"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /notes/{noteId} [get]
func (h *NoteHandler) Get(c *gin.Context) {
	ident, ok := currentIdentity(c)
	if !ok {
		return
	}
	note, err := h.svc.ResolveOwned(c.Request.Context(), c.Param("noteId"), ident.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("note found", dto.NoteToResponse(note)))
}

// List godoc
// @Summary      List the caller's notes
// @Tags         notes
// @Produce      json
// @Security     CookieAuth
// @Param        categoryId  query  string  false  "Filter by category"
// @Param        search      query  string  false  "Filter by title substring"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  map[string]any
// @Router       /notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	ident, ok := currentIdentity(c)
	if !ok {
		return
	}
	rawCategoryID := c.Query("categoryId")
	search := strings.TrimSpace(c.Query("search"))

	var filterCat dom.Category
	err := validate.Run(c.Request.Context(),
		validate.NewField("categoryId", rawCategoryID).
			Optional().
			Custom("ownership", h.ownedCategory(ident.UserID, &filterCat)),
		validate.NewField("search", search).
			Optional().
			Alphanumeric("a search query can contain letters and numbers only"),
	)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var f repo.NoteFilter
	if strings.TrimSpace(rawCategoryID) != "" {
		f.CategoryID = &filterCat.ID
	}
	f.Search = search

	list, err := h.svc.List(c.Request.Context(), ident.UserID, f)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("notes found", dto.ListNotesResponse{Items: dto.NotesToResponses(list)}))
}

// UpdateField godoc
// @Summary      Update one field of a note
// @Tags         notes
// @Accept       json
// @Security     CookieAuth
// @Param        noteId         path  string  true  "Note ID"
// @Param        fieldToUpdate  path  string  true  "One of title, details, category, status"
// @Param        body  body  dto.UpdateNoteFieldRequest  true  "New value"
// @Success      204
// @Failure      400  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /notes/{noteId}/{fieldToUpdate} [patch]
func (h *NoteHandler) UpdateField(c *gin.Context) {
	ident, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.UpdateNoteFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(malformedBody())
		return
	}
	err := h.svc.UpdateField(c.Request.Context(), ident.UserID, c.Param("noteId"), c.Param("fieldToUpdate"), req.NewValue)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete godoc
// @Summary      Delete a note
// @Tags         notes
// @Security     CookieAuth
// @Param        noteId  path  string  true  "Note ID"
// @Success      204
// @Failure      400  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /notes/{noteId} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	ident, ok := currentIdentity(c)
	if !ok {
		return
	}
	note, err := h.svc.ResolveOwned(c.Request.Context(), c.Param("noteId"), ident.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), ident.UserID, note.ID); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
