package site

import "github.com/gin-gonic/gin"

// RegisterRoutes registers public site content routes
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/services", handler.ListServices)
	r.GET("/services/:slug", handler.GetService)
	r.GET("/company", handler.GetCompany)
}
