package main

import (
	"context"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/leaseflow/leaseflow/internal/api/cron"
	"github.com/leaseflow/leaseflow/internal/cache"
	"github.com/leaseflow/leaseflow/internal/config"
	"github.com/leaseflow/leaseflow/internal/events"
	"github.com/leaseflow/leaseflow/internal/logger"
	"github.com/leaseflow/leaseflow/internal/postgres"
	"github.com/leaseflow/leaseflow/internal/repository/store"
	"github.com/leaseflow/leaseflow/internal/rest"
	"github.com/leaseflow/leaseflow/internal/scheduler"
	"github.com/leaseflow/leaseflow/internal/service"
)

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			postgres.NewClient,
			store.NewRepositories,
			events.NewBus,
			newServiceParams,
			service.NewNotificationService,
			service.NewInitialChargeService,
			service.NewLeaseService,
			service.NewRecurringChargeService,
			service.NewReminderService,
			scheduler.NewRecurringChargeScheduler,
			scheduler.NewReminderScheduler,
			newBillingCronHandler,
			newRouter,
		),
		fx.Invoke(
			initSentry,
			initCache,
			migrate,
			startRealtimePusher,
			startSchedulers,
			startServer,
		),
	)
	app.Run()
}

func newServiceParams(
	cfg *config.Configuration,
	log *logger.Logger,
	client postgres.IClient,
	repos *store.Repositories,
	bus *events.Bus,
) service.ServiceParams {
	return service.ServiceParams{
		Logger:           log,
		Config:           cfg,
		DB:               client,
		Cache:            cache.GetInMemoryCache(),
		Publisher:        bus,
		LeaseRepo:        repos.Lease,
		ChargeRepo:       repos.Charge,
		TemplateRepo:     repos.Template,
		NotificationRepo: repos.Notification,
		UserRepo:         repos.User,
		PropertySyncer:   repos.PropertySyncer,
	}
}

func newBillingCronHandler(
	recurringService service.RecurringChargeService,
	reminderService service.ReminderService,
	cfg *config.Configuration,
	log *logger.Logger,
) *cron.BillingCronHandler {
	return cron.NewBillingCronHandler(recurringService, reminderService, cfg, log)
}

func newRouter(handler *cron.BillingCronHandler, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	return rest.NewRouter(rest.Handlers{BillingCron: handler}, cfg, log)
}

func initSentry(cfg *config.Configuration, log *logger.Logger) error {
	if !cfg.Sentry.Enabled {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		Environment:      cfg.Sentry.Environment,
		TracesSampleRate: cfg.Sentry.SampleRate,
	})
	if err != nil {
		log.Errorw("failed to initialize sentry", "error", err)
		return err
	}
	log.Infow("sentry initialized", "environment", cfg.Sentry.Environment)
	return nil
}

func initCache(cfg *config.Configuration, log *logger.Logger) {
	cache.Initialize(cfg, log)
}

func migrate(lc fx.Lifecycle, cfg *config.Configuration, client postgres.IClient, log *logger.Logger) {
	if !cfg.Database.AutoMigrate {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pgClient, ok := client.(*postgres.Client)
			if !ok {
				return nil
			}
			return pgClient.Migrate(ctx)
		},
	})
}

func startRealtimePusher(lc fx.Lifecycle, bus *events.Bus, log *logger.Logger) {
	pusher := events.NewRealtimePusher(bus, log)
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return pusher.Start(ctx)
		},
		OnStop: func(context.Context) error {
			cancel()
			return bus.Close()
		},
	})
}

func startSchedulers(
	lc fx.Lifecycle,
	recurring *scheduler.RecurringChargeScheduler,
	reminder *scheduler.ReminderScheduler,
) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := recurring.Start(); err != nil {
				return err
			}
			return reminder.Start()
		},
		OnStop: func(context.Context) error {
			recurring.Stop()
			reminder.Stop()
			return nil
		},
	})
}

func startServer(lc fx.Lifecycle, router *gin.Engine, cfg *config.Configuration, log *logger.Logger) {
	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Infow("starting server", "address", cfg.Server.Address)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorw("server stopped unexpectedly", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
