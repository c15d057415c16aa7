package leavetype

import (
	"github.com/gin-gonic/gin"

	"github.com/nirzaf/gohrms/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	types := r.Group("/leave-types")
	types.Use(middleware.AuthMiddleware())
	{
		types.GET("", handler.GetActive)
		types.GET("/:id", handler.GetById)
		types.GET("/by-name/:name", handler.GetByName)
		types.POST("", handler.Create)
		types.DELETE("/:id", handler.Deactivate)
	}
}
