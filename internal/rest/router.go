package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/leaseflow/leaseflow/internal/api/cron"
	"github.com/leaseflow/leaseflow/internal/config"
	"github.com/leaseflow/leaseflow/internal/logger"
	"github.com/leaseflow/leaseflow/internal/rest/middleware"
	"github.com/leaseflow/leaseflow/internal/types"
)

// Handlers bundles the HTTP handlers the router mounts
type Handlers struct {
	BillingCron *cron.BillingCronHandler
}

// NewRouter builds the gin engine with the administrative trigger surface.
// The full CRUD API lives in the surrounding system; this core only exposes
// its scheduler triggers and a health probe.
func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode != types.DeploymentModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.SentryMiddleware(cfg),
		middleware.LoggingMiddleware(log),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	cronGroup := router.Group("/cron", middleware.AdminKeyMiddleware(cfg))
	{
		cronGroup.POST("/charges/recurring", handlers.BillingCron.GenerateRecurringCharges)
		cronGroup.POST("/reminders/scan", handlers.BillingCron.ScanReminders)
	}

	return router
}
