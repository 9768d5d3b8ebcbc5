package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the domain entity for a user account. PasswordHash is always
// a bcrypt hash, never the clear password.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
