// Package auth guards routes behind the session cookie and exposes the
// authenticated identity to downstream handlers.
package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ghislainnkundayezu/notes-app-api/internal/apperr"
	"github.com/ghislainnkundayezu/notes-app-api/internal/token"
)

const identityKey = "auth_identity"

// Identity is the verified claim of the current request.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// CurrentIdentity returns the identity set by RequireAuth.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	ident, ok := v.(Identity)
	return ident, ok
}

// RequireAuth returns a middleware that verifies the session cookie and
// sets the current identity in context. A missing cookie, a bad
// signature, an expired token and a malformed claim are all rejected
// the same way.
func RequireAuth(tokens *token.Service, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cookieName)
		if err != nil || raw == "" {
			abortUnauthenticated(c, "missing authentication token")
			return
		}
		userID, email, err := tokens.Verify(raw)
		if err != nil {
			abortUnauthenticated(c, "invalid authentication token")
			return
		}
		c.Set(identityKey, Identity{UserID: userID, Email: email})
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context, message string) {
	_ = c.Error(apperr.Unauthenticated(message))
	c.Abort()
}
