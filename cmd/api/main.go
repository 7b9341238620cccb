// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/smartcityfix/api/internal/auth"
	"github.com/smartcityfix/api/internal/category"
	"github.com/smartcityfix/api/internal/config"
	"github.com/smartcityfix/api/internal/core"
	"github.com/smartcityfix/api/internal/health"
	"github.com/smartcityfix/api/internal/media"
	"github.com/smartcityfix/api/internal/middleware"
	"github.com/smartcityfix/api/internal/points"
	"github.com/smartcityfix/api/internal/report"
	"github.com/smartcityfix/api/internal/server"
	"github.com/smartcityfix/api/internal/settings"
	"github.com/smartcityfix/api/internal/stats"
	"github.com/smartcityfix/api/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	production := cfg.App.Environment == "production"

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	if err := ensureSessionKeys(cfg.Session, production, logger); err != nil {
		return err
	}

	tokenManager, err := auth.NewTokenManager(cfg.Session)
	if err != nil {
		return err
	}
	logger.Info("session token manager initialized",
		"algorithm", "ES256",
		"key_id", tokenManager.GetKeyID(),
	)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo, cfg.Leaderboard)
	userHandler := user.NewHandler(userSvc)

	authRepo := auth.NewRepository(db.DB)
	authSvc := auth.NewService(
		authRepo,
		tokenManager,
		userSvc,
		redis.Client,
		cfg.Admin,
	)
	authHandler := auth.NewHandler(authSvc, cfg.Session, production)

	settingsRepo := settings.NewRepository(db.DB)
	settingsSvc := settings.NewService(settingsRepo, redis.Client)
	settingsHandler := settings.NewHandler(settingsSvc)

	pointsRepo := points.NewRepository(db.DB)
	pointsSvc := points.NewService(pointsRepo)
	pointsHandler := points.NewHandler(pointsSvc)

	reportRepo := report.NewRepository(db.DB)
	reportSvc := report.NewService(reportRepo, settingsSvc, pointsSvc)
	reportHandler := report.NewHandler(reportSvc)

	categoryRepo := category.NewRepository(db.DB)
	categorySvc := category.NewService(categoryRepo)
	categoryHandler := category.NewHandler(categorySvc)

	mediaSigner := media.NewSigner(cfg.Cloudinary)
	mediaClient := media.NewClient(mediaSigner)
	mediaHandler := media.NewHandler(mediaSigner, mediaClient)

	statsRepo := stats.NewRepository(db.DB)
	statsSvc := stats.NewService(statsRepo)
	statsHandler := stats.NewHandler(stats.HandlerConfig{
		Service:    statsSvc,
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	healthHandler := health.NewHandler(db, redis)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(production))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", tokenManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(authSvc, cfg.Session.CookieName)
	adminOnly := middleware.RequireAdmin
	maintenanceGate := middleware.Maintenance(settingsSvc)

	// The gate runs after the authenticator so operator sessions keep
	// write access during a maintenance window.
	gatedAuthenticator := func(next http.Handler) http.Handler {
		return authenticator(maintenanceGate(next))
	}

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)

		userHandler.RegisterRoutes(r)
		categoryHandler.RegisterRoutes(r)

		// Citizen mutations pause during maintenance; admin routes do not.
		reportHandler.RegisterRoutes(r, gatedAuthenticator)
		pointsHandler.RegisterRoutes(r, gatedAuthenticator)
		mediaHandler.RegisterRoutes(r, gatedAuthenticator)

		userHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		reportHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		categoryHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		settingsHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		statsHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

// ensureSessionKeys generates a development keypair when none exists.
// Production deployments must provision their own keys.
func ensureSessionKeys(
	cfg config.SessionConfig,
	production bool,
	logger *slog.Logger,
) error {
	_, err := os.Stat(cfg.PrivateKeyPath)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if production {
		return errors.New("session private key not found")
	}

	if genErr := auth.GenerateKeyPair(
		cfg.PrivateKeyPath,
		cfg.PublicKeyPath,
	); genErr != nil {
		return genErr
	}

	logger.Warn("generated development session keypair",
		"private_key", cfg.PrivateKeyPath,
	)
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
