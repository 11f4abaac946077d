package app

import (
	"net/http"

	"salary-system/internal/middleware"
	"salary-system/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildApp connects the backing stores and returns the routed engine.
func BuildApp(cfg Config) (*gin.Engine, *gorm.DB, *redis.Client, error) {
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode, 5,
	)
	if err != nil {
		return nil, nil, nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 3)
	if err != nil {
		// The services all run cache-miss paths without redis; degrade
		// instead of refusing to start.
		zap.L().Warn("redis unavailable, running without cache", zap.Error(err))
		rdb = nil
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	registry := NewRegistry(gormDB, sqlDB, rdb)
	registry.RegisterRoutes(router)

	return router, gormDB, rdb, nil
}
