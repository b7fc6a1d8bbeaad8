package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/libris-app/libris/internal/api"
	"github.com/libris-app/libris/internal/auth"
	"github.com/libris-app/libris/internal/config"
	"github.com/libris-app/libris/internal/pubsub"
	"github.com/libris-app/libris/internal/store"
	"github.com/libris-app/libris/internal/store/postgres"
	vk "github.com/libris-app/libris/internal/store/valkey"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	_ = godotenv.Load(".env") // ignore error if .env missing

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database pool
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.Database.DSN(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		logger.Error("failed to apply schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	s := store.New(pool)
	broker := pubsub.NewBroker()

	deps := &api.RouterDeps{
		Tokens:      auth.NewTokens(cfg.Auth.TokenSecret),
		Broker:      broker,
		Publisher:   pubsub.LocalPublisher{Broker: broker},
		LoginSecret: cfg.Auth.LoginSecret,
	}

	// Graceful shutdown
	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Valkey (optional — fans subscription events out across API replicas)
	if cfg.Valkey.Addr != "" {
		vkClient, err := vk.NewClient(cfg.Valkey)
		if err != nil {
			logger.Warn("valkey connection failed, events stay process-local", slog.String("error", err.Error()))
		} else {
			bridge := pubsub.NewBridge(vkClient, broker, logger)
			deps.Publisher = bridge
			go func() {
				if err := bridge.Run(runCtx); err != nil && runCtx.Err() == nil {
					logger.Error("event bridge stopped", slog.String("error", err.Error()))
				}
			}()
			defer vkClient.Close()
			logger.Info("connected to valkey")
		}
	}

	router := api.NewRouter(logger, s, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting API server", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	<-runCtx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
