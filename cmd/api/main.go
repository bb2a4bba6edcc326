package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LJTian/NewsHorizon/internal/api"
	"github.com/LJTian/NewsHorizon/internal/collector"
	"github.com/LJTian/NewsHorizon/internal/config"
	"github.com/LJTian/NewsHorizon/internal/logger"
	"github.com/LJTian/NewsHorizon/internal/metrics"
	"github.com/LJTian/NewsHorizon/internal/news"
	"github.com/LJTian/NewsHorizon/internal/processor"
	"github.com/LJTian/NewsHorizon/internal/scheduler"
	"github.com/LJTian/NewsHorizon/internal/sentiment"
	"github.com/LJTian/NewsHorizon/internal/session"
	"github.com/LJTian/NewsHorizon/internal/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("init logger failed: %v", err)
	}
	defer func() { _ = log.Sync() }()

	m := metrics.New()

	janitor, err := scheduler.New(cfg.JanitorSpec, log)
	if err != nil {
		log.Error("init janitor failed", logger.String("spec", cfg.JanitorSpec), logger.Err(err))
		os.Exit(1)
	}

	// 配置了 Redis 时缓存与会话存 Redis，过期交给 TTL；否则用进程内实现并由 janitor 清理
	var (
		cache    news.ListingCache
		sessions session.Store
	)
	if cfg.RedisAddr != "" {
		store := storage.NewStore(cfg.RedisAddr, cfg.CacheTTL, cfg.SessionTTL, log)
		defer func() { _ = store.Close() }()
		cache = store.Lists()
		sessions = store.Sessions()
		log.Info("using redis storage", logger.String("addr", cfg.RedisAddr))
	} else {
		memCache := news.NewMemoryCache(cfg.CacheTTL)
		memSessions := session.NewMemoryStore(cfg.SessionTTL)
		janitor.Register("listing_cache", memCache)
		janitor.Register("sessions", memSessions)
		cache = memCache
		sessions = memSessions
		log.Info("using in-memory storage")
	}
	janitor.Start()
	defer janitor.Stop()

	fetcher := collector.NewRSSFetcher(cfg.FeedUserAgent, cfg.FeedTimeout, cfg.FeedAllowedDomain)
	filter := processor.NewContentFilter(sentiment.NewVaderScorer(), m)
	svc := news.NewService(cfg.FeedHost, fetcher, filter, news.Options{
		Cache:    cache,
		Recorder: m,
		Logger:   log,
	})

	// API
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), api.RequestLogger(log))
	// 若配置了全局访问密码，则启用 Basic Auth 保护（/health 仍然免认证）
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPass != "" {
		r.Use(api.BasicAuth(cfg.BasicAuthUser, cfg.BasicAuthPass))
	}

	api.NewServer(svc, api.Options{
		Sessions: sessions,
		Metrics:  m,
		Logger:   log,
	}).RegisterRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting api server", logger.String("addr", srv.Addr), logger.String("feed_host", cfg.FeedHost))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server exit", logger.Err(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("graceful shutdown failed", logger.Err(err))
	}
}
