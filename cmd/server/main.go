package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kahlar/webdevproject/internal/config"
	"github.com/Kahlar/webdevproject/internal/database"
	"github.com/Kahlar/webdevproject/internal/engine"
	"github.com/Kahlar/webdevproject/internal/handlers"
	"github.com/Kahlar/webdevproject/internal/middleware"
	"github.com/Kahlar/webdevproject/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/lmittmann/tint"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// MONGODB_URI=memory runs against the in-memory backend, for local
	// development without a database.
	var store database.Store
	if cfg.Database.URI == "memory" {
		logger.Info("using in-memory store")
		store = database.NewMemoryStore()
	} else {
		db, err := database.NewMongoDB(ctx, cfg.Database, logger.With("component", "mongodb"))
		if err != nil {
			logger.Error("failed to initialize database", "error", err)
			os.Exit(1)
		}
		store = db
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	metrics := utils.NewMetricsCollector()
	system := actor.NewActorSystem()
	eng := engine.NewEngine(system, store, metrics, logger)
	defer eng.Stop()

	server := handlers.NewServer(system, eng, store, metrics, logger)

	var handler http.Handler = server.Routes()
	rateLimiter := middleware.NewRateLimiter(cfg.Server.RateLimit)
	handler = rateLimiter.Middleware(handler)
	handler = middleware.CORSMiddleware(middleware.DefaultCORSConfig(cfg.AllowedOrigins))(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("starting server", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
