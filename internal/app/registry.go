package app

import (
	"database/sql"

	"go-agency/internal/config"
	"go-agency/internal/directory"
	"go-agency/internal/leave"
	"go-agency/internal/messaging/kafka"
	"go-agency/internal/middleware"
	"go-agency/internal/rbac"
	"go-agency/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	directoryRepo := directory.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)

	// --- Services ---
	directoryService := directory.NewServiceWithCache(directoryRepo, rdb, cfg.App.AvailabilityTTL, logger)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, directoryService, outboxRepo, logger)

	// --- Handlers ---
	rbacHandler := rbac.NewHandler(rbacService, logger)
	directoryHandler := directory.NewHandler(directoryService, logger)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb, logger)

	guard := []gin.HandlerFunc{
		middleware.AuthMiddleware(cfg.JWT.Secret),
		middleware.RequestLogger(),
		middleware.RateLimitByUser(rate.Limit(cfg.RateLimit.PerSecond), cfg.RateLimit.Burst),
	}

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		rbac.RegisterRoutes(api, rbacHandler, rbacService, guard...)
		directory.RegisterRoutes(api, directoryHandler, rbacService, guard...)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb, guard...)
	}

	return nil
}
