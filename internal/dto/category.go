package dto

import (
	"time"

	dom "github.com/ghislainnkundayezu/notes-app-api/internal/domain"
)

// CreateCategoryRequest is the JSON body for POST /categories.
type CreateCategoryRequest struct {
	Label string `json:"label"`
}

// UpdateCategoryRequest is the JSON body for PATCH /categories/:categoryId.
type UpdateCategoryRequest struct {
	NewLabel string `json:"newLabel"`
}

type CategoryResponse struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

func CategoryToResponse(c dom.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID.String(),
		Label:     c.Label,
		CreatedAt: c.CreatedAt,
	}
}

func CategoriesToResponses(list []dom.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(list))
	for i := range list {
		out[i] = CategoryToResponse(list[i])
	}
	return out
}
