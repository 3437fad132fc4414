package upload

import "github.com/gin-gonic/gin"

// RegisterRoutes registers image routes under the dev-only /api group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/upload", h.Upload)

	files := r.Group("/files")
	{
		files.GET("/:equipmentSlug", h.ListFiles)
		files.DELETE("/*path", h.DeleteFile)
	}
}
