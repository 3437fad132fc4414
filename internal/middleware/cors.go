package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// devOrigins are the local frontend dev servers, always allowed.
var devOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

// CORS reflects allowed origins so the admin panel can call the API from a
// separate dev server. extraOrigins comes from CORS_ALLOWED_ORIGINS.
func CORS(extraOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(devOrigins)+len(extraOrigins))
	for _, o := range devOrigins {
		allowed[o] = true
	}
	for _, o := range extraOrigins {
		allowed[o] = true
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()

		if origin := c.GetHeader("Origin"); origin != "" && allowed[origin] {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Vary", "Origin")
			h.Set("Access-Control-Allow-Credentials", "true")
		}

		h.Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Origin, X-Requested-With")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Expose-Headers", "Location")
		h.Set("Access-Control-Max-Age", "600")

		// preflight never reaches the dev-only gate
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
