package directory

import (
	"github.com/gin-gonic/gin"

	"github.com/nirzaf/gohrms/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("/:id", handler.GetById)
		employees.GET("/:id/reports", handler.GetReports)
		employees.GET("/department/:department", handler.GetByDepartment)
	}
}
