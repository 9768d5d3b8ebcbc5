package dto

import (
	"time"

	dom "github.com/ghislainnkundayezu/notes-app-api/internal/domain"
)

// CreateNoteRequest is the JSON body for POST /notes. CategoryID is
// optional; when set it must name a category owned by the caller.
type CreateNoteRequest struct {
	Title      string `json:"title"`
	Details    string `json:"details"`
	CategoryID string `json:"categoryId"`
}

// UpdateNoteFieldRequest is the JSON body for
// PATCH /notes/:noteId/:fieldToUpdate. An empty value is meaningful for
// the category field: it clears the reference.
type UpdateNoteFieldRequest struct {
	NewValue string `json:"newValue"`
}

type NoteResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Details    string    `json:"details"`
	Status     string    `json:"status"`
	CategoryID *string   `json:"categoryId"`
	CreatedAt  time.Time `json:"created_at"`
}

type ListNotesResponse struct {
	Items []NoteResponse `json:"items"`
}

func NoteToResponse(n dom.Note) NoteResponse {
	out := NoteResponse{
		ID:        n.ID.String(),
		Title:     n.Title,
		Details:   n.Details,
		Status:    string(n.Status),
		CreatedAt: n.CreatedAt,
	}
	if n.CategoryID != nil {
		s := n.CategoryID.String()
		out.CategoryID = &s
	}
	return out
}

func NotesToResponses(list []dom.Note) []NoteResponse {
	out := make([]NoteResponse, len(list))
	for i := range list {
		out[i] = NoteToResponse(list[i])
	}
	return out
}
