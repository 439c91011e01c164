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

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/config"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/domain"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/handler"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/health"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/infra/captionfile"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/infra/repository"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/infra/schedulerecorder"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/observability/logging"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/observability/middleware"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/service/playback"
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

	// Validate configuration
	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	playbackMetrics, err := metrics.NewPlaybackMetrics()
	if err != nil {
		slog.Error("failed to initialize playback metrics", slog.String("error", err.Error()))
		return 1
	}

	// Lane assignment recorder (InfluxDB for local, BigQuery for gcloud)
	recorder, err := schedulerecorder.NewRecorder(ctx, schedulerecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize schedule recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close schedule recorder", slog.String("error", err.Error()))
		}
	}()

	redisClient := redis.NewClient(newRedisOptions(cfg.Redis))

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

	captionRepo := repository.NewCaptionRepository(redisClient)

	if err := seedCaptions(ctx, cfg.Seed, captionRepo); err != nil {
		slog.Error("failed to seed captions",
			slog.String("event", "captions.seed.fail"),
			slog.String("dir", cfg.Seed.Dir),
			slog.String("error", err.Error()),
		)
		return 1
	}

	playbackService := playback.NewService(
		captionRepo,
		recorder,
		cfg.Scheduler,
		cfg.Session,
		playbackMetrics,
	)

	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		playbackService.RunSweeper(ctx)
	}()

	captionHandler := handler.NewCaptionHandler(captionRepo)
	sessionHandler := handler.NewSessionHandler(playbackService)

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		Module:      logging.Module("danmaku-playback"),
		TracerName:  "github.com/KasumiMercury/danmaku-lane-scheduler/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	// Health check endpoints
	healthChecker := health.NewChecker(redisClient, playbackService, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	// API routes
	handler.Register(r.Group("/api/v1"), captionHandler, sessionHandler)

	// gRPC health checks share the port with the JSON API over h2c.
	grpcHealthPath, grpcHealthHandler := healthChecker.GRPCHandler()
	mux := http.NewServeMux()
	mux.Handle(grpcHealthPath, grpcHealthHandler)
	mux.Handle("/", r)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2c.NewHandler(mux, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("lane_strategy", string(cfg.Scheduler.Strategy)),
			slog.Int("lane_count", cfg.Scheduler.LaneCount),
			slog.Float64("move_duration", cfg.Scheduler.MoveDuration),
			slog.Float64("lookahead_window", cfg.Scheduler.LookaheadWindow),
			slog.Int("max_sessions", cfg.Session.MaxSessions),
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
		<-sweeperDone

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		cancel()
		<-sweeperDone
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

func seedCaptions(ctx context.Context, cfg *config.SeedConfig, repo domain.CaptionRepository) error {
	if !cfg.Enabled() {
		return nil
	}

	docs, err := captionfile.LoadDir(ctx, cfg.Dir)
	if err != nil {
		return err
	}

	return captionfile.Seed(ctx, repo, docs)
}
