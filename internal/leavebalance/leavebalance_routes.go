package leavebalance

import (
	"github.com/gin-gonic/gin"

	"github.com/nirzaf/gohrms/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	balances := r.Group("/leave-balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("", handler.GetBalance)
		balances.POST("/accrue", handler.Accrue)
		balances.POST("/reconcile", handler.Reconcile)
	}
}
