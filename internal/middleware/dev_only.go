package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentcatalog/internal/pkg/response"
)

// DevOnly guards the admin surface. Outside development it answers 403 and
// points the client back to the home page.
func DevOnly(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if enabled {
			c.Next()
			return
		}

		c.Header("Location", "/")
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin panel is available only in development mode")
		c.Abort()
	}
}
