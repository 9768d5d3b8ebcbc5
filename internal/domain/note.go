package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a note.
type Status string

const (
	StatusOngoing  Status = "ongoing"
	StatusFinished Status = "finished"
)

// ParseStatus normalizes s and reports whether it is a valid status.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusOngoing:
		return StatusOngoing, true
	case StatusFinished:
		return StatusFinished, true
	}
	return "", false
}

// Note is the domain entity for a note. CategoryID is nil when the note
// is not filed under a category.
type Note struct {
	ID         uuid.UUID
	Title      string
	Details    string
	Status     Status
	CategoryID *uuid.UUID
	OwnerID    uuid.UUID
	CreatedAt  time.Time
}
