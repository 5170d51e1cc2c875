package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/sdiagne/loansched/internal/config"
	"github.com/sdiagne/loansched/internal/repository/cache"
	"github.com/sdiagne/loansched/internal/scheduler"
	"github.com/sdiagne/loansched/internal/server/handlers"
	"github.com/sdiagne/loansched/internal/server/router"
	"github.com/sdiagne/loansched/internal/service/schedule"
	"github.com/sdiagne/loansched/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var responseCache cache.Cache
	var memoryCache *cache.Memory

	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		redisCache, err := cache.NewRedis(context.Background(), cfg.Cache.RedisAddr)
		if err != nil {
			baseLogger.Fatal("failed to init redis cache", zap.Error(err))
		}
		defer func() {
			if err := redisCache.Close(); err != nil {
				baseLogger.Error("failed to close redis connection", zap.Error(err))
			}
		}()
		responseCache = redisCache
		baseLogger.Info("redis response cache enabled", zap.String("addr", cfg.Cache.RedisAddr))
	default:
		memoryCache = cache.NewMemory()
		responseCache = memoryCache
		baseLogger.Info("in-process response cache enabled")
	}

	engineSvc := schedule.NewService(baseLogger.Named("svc.schedule"))
	scheduleHandler := handlers.NewScheduleHandler(engineSvc, responseCache, cfg.Cache.TTL, baseLogger.Named("handlers.schedule"))

	rateLimiter := router.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	engine := router.New(scheduleHandler, rateLimiter, cfg.Server.TemplateGlob, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, memoryCache, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
