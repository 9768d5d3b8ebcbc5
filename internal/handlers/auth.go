package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ghislainnkundayezu/notes-app-api/internal/apperr"
	"github.com/ghislainnkundayezu/notes-app-api/internal/auth"
	dom "github.com/ghislainnkundayezu/notes-app-api/internal/domain"
	"github.com/ghislainnkundayezu/notes-app-api/internal/dto"
	"github.com/ghislainnkundayezu/notes-app-api/internal/token"
	"github.com/ghislainnkundayezu/notes-app-api/internal/validate"
)

// UserService is the slice of the user service the handlers need.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (dom.User, error)
	Authenticate(ctx context.Context, username, email, password string) (dom.User, error)
	Get(ctx context.Context, id uuid.UUID) (dom.User, error)
	Rename(ctx context.Context, id uuid.UUID, username string) error
}

// CookieSettings configures the session cookie carrier.
type CookieSettings struct {
	Name   string
	Domain string
	Secure bool
}

// AuthHandler handles register, login and logout.
type AuthHandler struct {
	users  UserService
	tokens *token.Service
	cookie CookieSettings
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(users UserService, tokens *token.Service, cookie CookieSettings) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, cookie: cookie}
}

// Register godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Credentials"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(malformedBody())
		return
	}
	err := validate.Run(c.Request.Context(),
		validate.NewField("username", req.Username).
			Required("a username is required").
			MinLen(3, "a username must be at least 3 characters").
			Alphanumeric("a username can contain letters and numbers only"),
		validate.NewField("email", req.Email).
			Required("an email is required").
			Email("invalid email format"),
		validate.NewField("password", req.Password).
			Required("a password is required").
			MinLen(8, "a password must be at least 8 characters long"),
	)
	if err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.setSessionCookie(c, user); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK("user registered", nil))
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.Response
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(malformedBody())
		return
	}
	err := validate.Run(c.Request.Context(),
		validate.NewField("username", req.Username).
			Required("a username is required").
			MinLen(3, "a username must be at least 3 characters").
			Alphanumeric("a username can contain letters and numbers only"),
		validate.NewField("email", req.Email).
			Required("an email is required").
			Email("invalid email format"),
		validate.NewField("password", req.Password).
			Required("a password is required").
			MinLen(8, "a password must be at least 8 characters long"),
	)
	if err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.setSessionCookie(c, user); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("user login succeeded", nil))
}

// Logout godoc
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, user dom.User) error {
	signed, _, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookie.Name, signed, int(h.tokens.TTL().Seconds()), "/", h.cookie.Domain, h.cookie.Secure, true)
	return nil
}

func malformedBody() *apperr.Error {
	return apperr.Validation([]apperr.FieldError{{Field: "body", Message: "malformed JSON body"}})
}

func currentIdentity(c *gin.Context) (auth.Identity, bool) {
	ident, ok := auth.CurrentIdentity(c)
	if !ok {
		_ = c.Error(apperr.Unauthenticated("missing authentication context"))
	}
	return ident, ok
}
