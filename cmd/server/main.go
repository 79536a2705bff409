package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/filegram/panel/config"
	apprepository "github.com/filegram/panel/internal/app/repository"
	appserver "github.com/filegram/panel/internal/app/server"
	appservice "github.com/filegram/panel/internal/app/service"
	"github.com/filegram/panel/internal/infra/auth"
	"github.com/filegram/panel/internal/infra/db"
	"github.com/filegram/panel/internal/infra/logger"
	infraNATS "github.com/filegram/panel/internal/infra/nats"
	infraPrometheus "github.com/filegram/panel/internal/infra/prometheus"
	infraRedis "github.com/filegram/panel/internal/infra/redis"
	"github.com/filegram/panel/internal/infra/render"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	isDev := os.Getenv("APP_ENV") != "production"
	log := logger.MustInit(logger.Config{
		Development: isDev,
		Level:       os.Getenv("LOG_LEVEL"),
	})
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}

	handle, err := db.Connect(ctx, cfg.Database.URI)
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		if hint := db.ConnectionHint(err); hint != "" {
			fields = append(fields, zap.String("hint", hint))
		}
		log.Fatal("Failed to connect to database", fields...)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := handle.Close(closeCtx); err != nil {
			log.Warn("Failed to close database handle", zap.Error(err))
		}
	}()
	log.Info("Connected to database", zap.String("backend", string(handle.Type)))

	repos := apprepository.New(handle)

	redisClient := connectRedis(ctx, cfg, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var js nats.JetStreamContext
	if cfg.NATS.Host != "" {
		natsConn, jetStream, err := infraNATS.Connect(cfg.NATS)
		if err != nil {
			log.Warn("NATS unavailable, activity events disabled", zap.Error(err))
		} else {
			defer natsConn.Drain()
			js = jetStream
			log.Info("Connected to NATS", zap.Bool("jetstream_ready", js != nil))
		}
	}

	if !isDev {
		promServer := infraPrometheus.NewServer(cfg.Prometheus)
		go func() {
			log.Info("Starting Prometheus metrics server", zap.String("addr", promServer.Addr))
			if err := promServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Prometheus metrics server stopped unexpectedly", zap.Error(err))
			}
		}()
		defer func() {
			if err := promServer.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Warn("Failed to close Prometheus server", zap.Error(err))
			}
		}()
	}

	publisher := appservice.NewActivityPublisher(js)

	var syncer appservice.EnvSyncer
	renderClient := render.NewClient(cfg.Render)
	if renderClient.Configured() {
		syncer = renderClient
		log.Info("Hosting provider sync enabled")
	}

	server := appserver.New(appserver.Dependencies{
		Logger:     log,
		Redis:      redisClient,
		Resolver:   auth.NewClient(cfg.Auth),
		Repos:      repos,
		Links:      appservice.NewLinkService(repos.Links, publisher),
		Admins:     appservice.NewAdminService(repos.Admins),
		Broadcasts: appservice.NewBroadcastService(repos.Broadcasts, repos.Users),
		Env:        appservice.NewEnvService(repos.EnvVars, syncer),
		Status:     appservice.NewStatusService(repos.Status, handle),
	})

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", cfg.Server.Addr))
		if err := server.Listen(cfg.Server.Addr); err != nil {
			log.Fatal("Fiber server exited", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("Graceful shutdown failed", zap.Error(err))
	}
}

// connectRedis is best-effort: the panel runs without rate limiting when
// Redis is absent or unreachable.
func connectRedis(ctx context.Context, cfg *config.Config, log *zap.Logger) *redis.Client {
	if cfg.Redis.Host == "" {
		return nil
	}
	client, err := infraRedis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, rate limiting disabled", zap.Error(err))
		return nil
	}
	log.Info("Connected to Redis")
	return client
}
