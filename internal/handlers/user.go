package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ghislainnkundayezu/notes-app-api/internal/dto"
	"github.com/ghislainnkundayezu/notes-app-api/internal/validate"
)

// UserHandler serves the current user's profile.
type UserHandler struct {
	users UserService
}

// NewUserHandler returns a new UserHandler.
func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Get godoc
// @Summary      Get the current user
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.Response
// @Failure      401  {object}  map[string]any
// @Router       /users [get]
func (h *UserHandler) Get(c *gin.Context) {
	ident, ok := currentIdentity(c)
	if !ok {
		return
	}
	user, err := h.users.Get(c.Request.Context(), ident.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("user found", dto.UserResponse{
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}))
}

// UpdateUsername godoc
// @Summary      Change the current user's username
// @Tags         users
// @Accept       json
// @Security     CookieAuth
// @Param        body  body  dto.UpdateUsernameRequest  true  "New username"
// @Success      204
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Router       /users [patch]
func (h *UserHandler) UpdateUsername(c *gin.Context) {
	ident, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.UpdateUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(malformedBody())
		return
	}
	err := validate.Run(c.Request.Context(),
		validate.NewField("username", req.Username).
			Required("a username is required").
			MinLen(3, "a username must be at least 3 characters").
			Alphanumeric("a username can contain letters and numbers only"),
	)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.users.Rename(c.Request.Context(), ident.UserID, req.Username); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
