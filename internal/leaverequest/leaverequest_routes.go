package leaverequest

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/nirzaf/gohrms/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.GET("", handler.List)
		requests.GET("/pending-approvals", handler.PendingApprovals)
		requests.GET("/:id", handler.GetById)
		requests.POST("", middleware.Idempotency(rdb), handler.Submit)
		requests.POST("/:id/approve", handler.Approve)
		requests.POST("/:id/reject", handler.Reject)
		requests.POST("/:id/cancel", handler.Cancel)
		requests.DELETE("/:id", handler.Delete)
	}
}
