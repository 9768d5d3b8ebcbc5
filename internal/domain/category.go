package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category groups notes under a user-chosen label. Owner never changes
// after creation.
type Category struct {
	ID        uuid.UUID
	Label     string
	OwnerID   uuid.UUID
	CreatedAt time.Time
}
