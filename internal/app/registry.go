package app

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/nirzaf/gohrms/internal/directory"
	"github.com/nirzaf/gohrms/internal/leavebalance"
	"github.com/nirzaf/gohrms/internal/leaverequest"
	"github.com/nirzaf/gohrms/internal/leavetype"
	"github.com/nirzaf/gohrms/internal/messaging/kafka"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	directoryRepo := directory.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	leaveBalanceRepo := leavebalance.NewRepository(gormDB)
	leaveRequestRepo := leaverequest.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Services ---
	directoryService := directory.NewService(directoryRepo)
	leaveTypeService := leavetype.NewService(leaveTypeRepo)
	leaveBalanceService := leavebalance.NewService(leaveBalanceRepo, leaveTypeRepo)
	leaveRequestService := leaverequest.NewService(
		gormDB,
		leaveRequestRepo,
		leaveBalanceService,
		directoryRepo,
		outboxRepo,
	)

	// --- Handlers ---
	directoryHandler := directory.NewHandler(directoryService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	leaveBalanceHandler := leavebalance.NewHandler(leaveBalanceService)
	leaveRequestHandler := leaverequest.NewHandlerWithRedis(leaveRequestService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		directory.RegisterRoutes(api, directoryHandler)
		leavetype.RegisterRoutes(api, leaveTypeHandler)
		leavebalance.RegisterRoutes(api, leaveBalanceHandler)
		leaverequest.RegisterRoutes(api, leaveRequestHandler, rdb)
	}

	return nil
}
