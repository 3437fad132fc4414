package catalog

import "github.com/gin-gonic/gin"

// RegisterAdminRoutes registers catalog editing routes on a dev-only group
func RegisterAdminRoutes(r *gin.RouterGroup, handler *AdminHandler) {
	equipment := r.Group("/equipment")
	{
		equipment.GET("", handler.ListEquipment)
		equipment.POST("", handler.CreateEquipment)
		equipment.PUT("", handler.UpdateEquipment)
		equipment.DELETE("", handler.DeleteEquipment)
	}

	categories := r.Group("/categories")
	{
		categories.GET("", handler.ListCategories)
		categories.POST("", handler.CreateCategory)
		categories.PUT("", handler.UpdateCategory)
		categories.DELETE("", handler.DeleteCategory)
	}
}

// RegisterPublicRoutes registers read-only catalog routes
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/equipment", handler.ListEquipment)
	r.GET("/equipment/:slug", handler.GetEquipment)
	r.GET("/categories", handler.ListCategories)
	r.GET("/categories/:slug", handler.GetCategory)
}
