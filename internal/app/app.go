package app

import (
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nirzaf/gohrms/internal/directory"
	"github.com/nirzaf/gohrms/internal/leavebalance"
	"github.com/nirzaf/gohrms/internal/leaverequest"
	"github.com/nirzaf/gohrms/internal/leavetype"
	"github.com/nirzaf/gohrms/internal/messaging/kafka"
	"github.com/nirzaf/gohrms/internal/shared/connection"
)

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	if err := autoMigrate(gormDB); err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	zap.L().Info("infrastructure ready, registering modules")
	return registerModules(router, gormDB, redisClient)
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&directory.Employee{},
		&leavetype.LeaveType{},
		&leavebalance.LeaveBalance{},
		&leaverequest.LeaveRequest{},
		&kafka.OutboxEvent{},
	)
}
