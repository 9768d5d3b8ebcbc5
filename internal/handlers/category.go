package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	dom "github.com/ghislainnkundayezu/notes-app-api/internal/domain"
	"github.com/ghislainnkundayezu/notes-app-api/internal/dto"
	"github.com/ghislainnkundayezu/notes-app-api/internal/validate"
)

// CategoryService is the slice of the category service the handlers
// need.
type CategoryService interface {
	ResolveOwned(ctx context.Context, rawID string, owner uuid.UUID) (dom.Category, error)
	Create(ctx context.Context, owner uuid.UUID, label string) (dom.Category, error)
	List(ctx context.Context, owner uuid.UUID) ([]dom.Category, error)
	Rename(ctx context.Context, owner, id uuid.UUID, label string) error
	Delete(ctx context.Context, owner, id uuid.UUID) error
}

// CategoryHandler handles category CRUD.
type CategoryHandler struct {
	svc CategoryService
}

// NewCategoryHandler returns a new CategoryHandler.
func NewCategoryHandler(svc CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// ownedCategory is the chain predicate checking id format, existence
// and ownership, in that order. The resolved category lands in out so
// the handler never has to parse the id a second time.
func (h *CategoryHandler) ownedCategory(owner uuid.UUID, out *dom.Category) validate.Func {
	return func(ctx context.Context, v string) error {
		c, err := h.svc.ResolveOwned(ctx, v, owner)
		if err != nil {
			return err
		}
		*out = c
		return nil
	}
}

// Create godoc
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body  dto.CreateCategoryRequest  true  "Category body"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  map[string]any
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	ident, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(malformedBody())
		return
	}
	err := validate.Run(c.Request.Context(),
		validate.NewField("label", req.Label).
			Required("a label for the category is required").
			Alphanumeric("a label can contain letters and numbers only"),
	)
	if err != nil {
		_ = c.Error(err)
		return
	}
	cat, err := h.svc.Create(c.Request.Context(), ident.UserID, req.Label)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK("category successfully created", dto.CategoryToResponse(cat)))
}

// List godoc
// @Summary      List the caller's categories
// @Tags         categories
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.Response
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	ident, ok := currentIdentity(c)
	if !ok {
		return
	}
	list, err := h.svc.List(c.Request.Context(), ident.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("categories successfully retrieved", dto.CategoriesToResponses(list)))
}

// UpdateLabel godoc
// @Summary      Replace a category's label
// @Tags         categories
// @Accept       json
// @Security     CookieAuth
// @Param        categoryId  path  string  true  "Category ID"
// @Param        body  body  dto.UpdateCategoryRequest  true  "New label"
// @Success      204
// @Failure      400  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /categories/{categoryId} [patch]
func (h *CategoryHandler) UpdateLabel(c *gin.Context) {
	ident, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(malformedBody())
		return
	}
	var cat dom.Category
	err := validate.Run(c.Request.Context(),
		validate.NewField("categoryId", c.Param("categoryId")).
			Required("a category id is required").
			Custom("ownership", h.ownedCategory(ident.UserID, &cat)),
		validate.NewField("newLabel", req.NewLabel).
			Required("a label for the category is required").
			Alphanumeric("a label can contain letters and numbers only"),
	)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.svc.Rename(c.Request.Context(), ident.UserID, cat.ID, req.NewLabel); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete godoc
// @Summary      Delete a category, detaching it from the caller's notes
// @Tags         categories
// @Produce      json
// @Security     CookieAuth
// @Param        categoryId  path  string  true  "Category ID"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /categories/{categoryId} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	ident, ok := currentIdentity(c)
	if !ok {
		return
	}
	var cat dom.Category
	err := validate.Run(c.Request.Context(),
		validate.NewField("categoryId", c.Param("categoryId")).
			Required("a category id is required").
			Custom("ownership", h.ownedCategory(ident.UserID, &cat)),
	)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), ident.UserID, cat.ID); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("category deleted successfully", nil))
}
