package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/forkful/saucier/internal/audit"
	"github.com/forkful/saucier/internal/auth"
	"github.com/forkful/saucier/internal/config"
	"github.com/forkful/saucier/internal/llm/ollama"
	"github.com/forkful/saucier/internal/llmcache"
	"github.com/forkful/saucier/internal/metrics"
	"github.com/forkful/saucier/internal/orchestrator"
	"github.com/forkful/saucier/internal/platform/logger"
	"github.com/forkful/saucier/internal/platform/otel"
	"github.com/forkful/saucier/internal/recipe"
	"github.com/forkful/saucier/internal/server"
	"github.com/forkful/saucier/internal/storage"
	"github.com/forkful/saucier/internal/store"
	"github.com/forkful/saucier/internal/store/memory"
	redisstore "github.com/forkful/saucier/internal/store/redis"
	"github.com/forkful/saucier/internal/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger.Initialize(logger.DefaultConfig())
	defer logger.Sync()
	zlog := logger.Get()

	go checkForUpdates(zlog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := otel.InitTracer("saucier", zlog, os.Stdout)
	if err != nil {
		zlog.Fatal("tracing init failed", zap.Error(err))
	}
	defer func() {
		_ = shutdownTracer(context.Background())
	}()

	repo, err := openRepository(cfg, zlog)
	if err != nil {
		zlog.Fatal("store init failed", zap.Error(err))
	}
	defer func() {
		_ = repo.Close()
	}()

	cacheRepo := repo.Cache()
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			zlog.Fatal("redis unreachable", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		cacheRepo = redisstore.NewCacheRepository(rdb, cfg.Redis.Prefix)
		zlog.Info("using redis cache backend", zap.String("addr", cfg.Redis.Addr))
	}

	registry := prometheus.NewRegistry()
	genMetrics := metrics.NewGeneration(registry)

	llmClient := ollama.New(ollama.Config{
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	})

	cacheService := llmcache.NewService(cacheRepo, llmcache.Config{TTL: cfg.Cache.TTL()}, zlog)
	orch := orchestrator.New(llmClient, cacheService, genMetrics, zlog)

	sweeperDone := orch.StartSweeper(ctx, cfg.Cache.SweepInterval)

	recorder := audit.NewRecorder(zlog, repo)
	recorder.Start(ctx)
	defer recorder.Stop()

	recipeService := recipe.NewService(zlog, repo, orch, recorder, recipe.Config{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
	})

	tokens := auth.NewTokenProvider(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	authService := auth.NewService(zlog, repo, tokens)

	exportStore := storage.NewFSStore(cfg.Storage.ExportDir)
	exportService := storage.NewService(zlog, exportStore)
	if err := exportService.Initialize(ctx); err != nil {
		zlog.Warn("export storage unavailable", zap.Error(err))
	}

	srv := server.New(cfg, zlog, server.Deps{
		Auth:         authService,
		Tokens:       tokens,
		Recipes:      recipeService,
		Orchestrator: orch,
		Exports:      exportService,
		Metrics:      metrics.Handler(registry),
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("server listening",
			zap.String("port", cfg.Server.Port),
			zap.String("model", cfg.LLM.Model),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
	<-sweeperDone
}

func openRepository(cfg *config.Config, zlog *zap.Logger) (store.Repository, error) {
	if cfg.Database.DSN == "" {
		zlog.Warn("no database DSN configured, using in-memory store")
		return memory.New(), nil
	}
	return sqlite.Open(cfg.Database.DSN)
}
