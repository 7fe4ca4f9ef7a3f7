package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/KasumiMercury/primind-vault/internal/config"
	"github.com/KasumiMercury/primind-vault/internal/domain"
	"github.com/KasumiMercury/primind-vault/internal/handler"
	"github.com/KasumiMercury/primind-vault/internal/health"
	"github.com/KasumiMercury/primind-vault/internal/infra/alertledger"
	"github.com/KasumiMercury/primind-vault/internal/infra/alertrecorder"
	"github.com/KasumiMercury/primind-vault/internal/infra/database"
	"github.com/KasumiMercury/primind-vault/internal/infra/objectstore"
	"github.com/KasumiMercury/primind-vault/internal/infra/repository"
	"github.com/KasumiMercury/primind-vault/internal/infra/session"
	"github.com/KasumiMercury/primind-vault/internal/observability/logging"
	"github.com/KasumiMercury/primind-vault/internal/observability/metrics"
	"github.com/KasumiMercury/primind-vault/internal/observability/middleware"
	"github.com/KasumiMercury/primind-vault/internal/service/alert"
	"github.com/KasumiMercury/primind-vault/internal/service/attachment"
	"github.com/KasumiMercury/primind-vault/internal/service/auth"
	"github.com/KasumiMercury/primind-vault/internal/service/dashboard"
	"github.com/KasumiMercury/primind-vault/internal/service/item"
	"github.com/KasumiMercury/primind-vault/internal/service/lifecycle"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
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

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	obs.SetLogLevel(cfg.LogLevel)

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

	vaultMetrics, err := metrics.NewVaultMetrics()
	if err != nil {
		slog.Error("failed to initialize vault metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB for local, BigQuery for gcloud
	resultRecorder, err := alertrecorder.NewRecorder(ctx, alertrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize alert result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := resultRecorder.Close(); err != nil {
			slog.Warn("failed to close alert result recorder", slog.String("error", err.Error()))
		}
	}()

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

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to open database",
			slog.String("event", "database.connect.fail"),
			slog.String("driver", cfg.Database.Driver),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Warn("failed to close database", slog.String("error", err.Error()))
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := repository.AutoMigrate(ctx, db); err != nil {
			slog.Error("failed to migrate database",
				slog.String("event", "database.migrate.fail"),
				slog.String("error", err.Error()),
			)
			return 1
		}
	}

	slog.Info("database connected", slog.String("driver", cfg.Database.Driver))

	redisOpts := &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	if cfg.Redis.TLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
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

	objectStorage := domain.ObjectStorage(objectstore.NewDisabledStorage())
	if cfg.Storage.Enabled() {
		gcs, err := objectstore.NewGCSStorage(ctx, objectstore.GCSConfig{
			Bucket:          cfg.Storage.Bucket,
			CredentialsFile: cfg.Storage.CredentialsFile,
		})
		if err != nil {
			slog.Error("failed to initialize object storage", slog.String("error", err.Error()))
			return 1
		}
		defer func() {
			if err := gcs.Close(); err != nil {
				slog.Warn("failed to close object storage", slog.String("error", err.Error()))
			}
		}()
		objectStorage = gcs

		slog.Info("object storage initialized", slog.String("bucket", cfg.Storage.Bucket))
	} else {
		slog.Warn("STORAGE_BUCKET not set, attachments are disabled")
	}

	itemRepo := repository.NewItemRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	userRepo := repository.NewUserRepository(db)
	sessionStore := session.NewRedisStore(redisClient)
	alertLedger := alertledger.NewRedisLedger(redisClient)

	classifier := lifecycle.NewClassifier()

	authService := auth.NewService(userRepo, sessionStore, cfg.Session.TTL)
	itemService := item.NewService(itemRepo, objectStorage, classifier, vaultMetrics)
	dashboardService := dashboard.NewService(itemRepo, classifier, vaultMetrics)
	attachmentService := attachment.NewService(itemRepo, attachmentRepo, objectStorage, attachment.Options{
		UploadURLTTL:        cfg.Storage.UploadURLTTL,
		DownloadURLTTL:      cfg.Storage.DownloadURLTTL,
		MaxSize:             cfg.Storage.MaxAttachmentSize,
		AllowedContentTypes: cfg.Storage.AllowedContentTypes,
	}, vaultMetrics)
	dispatcher := alert.NewDispatcher(itemRepo, alertLedger, taskQueue, resultRecorder, classifier, alert.Options{
		Thresholds: cfg.Alert.Thresholds,
		Horizon:    cfg.Alert.Horizon(),
		LedgerTTL:  cfg.Alert.LedgerTTL,
	}, vaultMetrics)

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:      logging.Module("vault"),
		TracerName:  "github.com/KasumiMercury/primind-vault/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(redisClient, db, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	v1 := r.Group("/api/v1")
	authed := v1.Group("", handler.RequireSession(authService))

	handler.NewAuthHandler(authService).Register(v1, authed)
	handler.NewTemplateHandler().Register(v1)
	handler.NewItemHandler(itemService).Register(authed)
	handler.NewAttachmentHandler(attachmentService).Register(authed)
	handler.NewDashboardHandler(dashboardService).Register(authed)
	handler.NewAlertHandler(dispatcher).Register(v1, cfg.Alert.DispatchToken)

	if cfg.Alert.DispatchToken == "" {
		slog.Warn("ALERT_DISPATCH_TOKEN not set, alert dispatch is unauthenticated")
	}

	// gRPC health checks share the port over h2c.
	mux := http.NewServeMux()
	grpcHealthPath, grpcHealthHandler := healthChecker.GRPCHandler()
	mux.Handle(grpcHealthPath, grpcHealthHandler)
	mux.Handle("/", r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2c.NewHandler(mux, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Bool("storage_enabled", cfg.Storage.Enabled()),
			slog.Int("alert_horizon_days", cfg.Alert.HorizonDays),
			slog.Any("alert_thresholds", cfg.Alert.Thresholds),
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
