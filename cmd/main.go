package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/config"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/handler"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/health"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/infra/devicegateway"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/infra/repository"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/infra/runrecorder"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/infra/store"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/jobs"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/observability/middleware"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/action"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/importer"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/plan"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/reminder"
)

// Version is set via ldflags at build time
var Version = "dev"

const serviceModule = logging.Module("timetable-reminder")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	if err := cfg.TaskQueue.Validate(); err != nil {
		slog.Error("task queue configuration error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	reminderMetrics, err := metrics.NewReminderMetrics()
	if err != nil {
		slog.Error("failed to initialize reminder metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB for local, BigQuery for gcloud
	runRecorder, err := runrecorder.NewRecorder(ctx, runrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize run recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := runRecorder.Flush(flushCtx); err != nil {
			slog.Warn("failed to flush run recorder", slog.String("error", err.Error()))
		}
		if err := runRecorder.Close(); err != nil {
			slog.Warn("failed to close run recorder", slog.String("error", err.Error()))
		}
	}()

	db, err := store.Open(ctx, cfg.Database.DSN(), store.Options{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		slog.Error("failed to connect database",
			slog.String("event", "db.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}
	timetableStore := store.New(db)
	defer func() {
		if err := timetableStore.Close(); err != nil {
			slog.Warn("failed to close database", slog.String("error", err.Error()))
		}
	}()

	if err := timetableStore.Migrate(ctx); err != nil {
		slog.Error("failed to migrate database", slog.String("error", err.Error()))
		return 1
	}

	today := civil.DateOf(time.Now().In(cfg.Reminder.Location))
	if err := timetableStore.Bootstrap(ctx, store.BootstrapOptions{
		Today:      today,
		SeedSample: cfg.IsDebug(),
	}); err != nil {
		slog.Error("failed to bootstrap timetable data", slog.String("error", err.Error()))
		return 1
	}

	taskQueue, cleanup, err := initTaskQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize task queue", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("task queue cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	redisOpts, err := cfg.Redis.Options()
	if err != nil {
		slog.Error("invalid redis configuration", slog.String("error", err.Error()))
		return 1
	}
	redisClient := redis.NewClient(redisOpts)

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	triggerRegistry := repository.NewTriggerRegistry(redisClient)
	deviceGateway := devicegateway.NewClient(cfg.DeviceGatewayURL)

	planner := reminder.NewPlannerWithWindow(cfg.Reminder.Lead, cfg.Reminder.RaceWindow, cfg.Reminder.Location)
	scheduler := reminder.NewScheduler(
		planner,
		taskQueue,
		triggerRegistry,
		deviceGateway,
		timetableStore,
		reminderMetrics,
		reminder.Options{
			TickInterval:      cfg.Reminder.TickInterval,
			Snooze:            cfg.Reminder.Snooze,
			AutoStartProgress: cfg.Reminder.AutoStartProgress,
		},
	)

	planService := plan.NewService(
		timetableStore,
		scheduler,
		runRecorder,
		reminderMetrics,
		cfg.Reminder.LookaheadDays,
	)
	dispatcher := action.NewDispatcher(planService, scheduler)
	importService := importer.NewService(timetableStore)

	planHandler := handler.NewPlanHandler(planService)
	triggerHandler := handler.NewTriggerHandler(planService)
	actionHandler := handler.NewActionHandler(dispatcher)
	calendarHandler := handler.NewCalendarHandler(planService)
	importHandler := handler.NewImportHandler(importService, cfg.Reminder.Location)

	cronManager := jobs.NewManager(planService, cfg.Reminder.ReplanCron, cfg.Reminder.Location)
	if err := cronManager.Start(ctx); err != nil {
		slog.Error("failed to start cron jobs", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer stopCancel()
		cronManager.Stop(stopCtx)
	}()

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:  []string{"/health", "/health/live", "/health/ready"},
		Module:     serviceModule,
		TracerName: "github.com/KasumiMercury/primind-timetable-reminder/internal/observability/middleware",
		JobNameResolver: func(c *gin.Context) string {
			if taskName := c.Request.Header.Get("X-CloudTasks-TaskName"); taskName != "" {
				return taskName
			}
			return c.Request.Header.Get("X-Primind-Task-Name")
		},
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	// Health check endpoints
	healthChecker := health.NewChecker(redisClient, timetableStore, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	grpcHealthPath, grpcHealthHandler := healthChecker.GRPCHandler()
	r.Any(grpcHealthPath+"*method", gin.WrapH(grpcHealthHandler))

	// API routes
	v1 := r.Group("/api/v1")
	{
		v1.POST("/plan", planHandler.HandlePlanDefault)
		v1.POST("/timetables/:id/plan", planHandler.HandlePlanTimetable)
		v1.GET("/timetables/:id/status", planHandler.HandleStatus)
		v1.GET("/timetables/:id/calendar.ics", calendarHandler.HandleExport)
		v1.POST("/timetables/:id/import", importHandler.HandleImport)
		v1.POST("/triggers/fire", triggerHandler.HandleFire)
		v1.POST("/actions", actionHandler.HandleAction)
	}

	// h2c lets the gRPC health protocol share the plaintext port
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2c.NewHandler(r, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("environment", string(cfg.Environment)),
			slog.Duration("lead", cfg.Reminder.Lead),
			slog.Int("lookahead_days", cfg.Reminder.LookaheadDays),
			slog.Duration("tick_interval", cfg.Reminder.TickInterval),
			slog.String("time_zone", cfg.Reminder.Location.String()),
		)
		serverErr <- srv.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
