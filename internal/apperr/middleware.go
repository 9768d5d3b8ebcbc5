package apperr

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// errorBody is the uniform failure envelope.
type errorBody struct {
	Success bool         `json:"success"`
	Title   string       `json:"title"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// Middleware translates errors attached during handling into the
// uniform envelope. Unclassified errors are logged server-side; clients
// never see their text.
func Middleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		ae := From(c.Errors.Last().Err)
		if ae.Kind == KindInternal {
			log.Error("unclassified error",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(ae.Unwrap()),
			)
		}
		if c.Writer.Written() {
			return
		}
		c.JSON(ae.Kind.Status(), errorBody{
			Success: false,
			Title:   ae.Kind.Title(),
			Message: ae.Message,
			Details: ae.Fields,
		})
	}
}

// NoRoute produces the NotFound envelope for unknown routes, naming the
// method and path.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorBody{
			Success: false,
			Title:   KindNotFound.Title(),
			Message: fmt.Sprintf("route %s %s does not exist", c.Request.Method, c.Request.URL.Path),
		})
	}
}
