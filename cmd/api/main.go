package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/giftgrug/giftgrug/internal/cache"
	"github.com/giftgrug/giftgrug/internal/chat"
	"github.com/giftgrug/giftgrug/internal/config"
	"github.com/giftgrug/giftgrug/internal/database"
	"github.com/giftgrug/giftgrug/internal/identity"
	"github.com/giftgrug/giftgrug/internal/logging"
	"github.com/giftgrug/giftgrug/internal/metrics"
	"github.com/giftgrug/giftgrug/internal/middleware"
	"github.com/giftgrug/giftgrug/internal/queue"
	"github.com/giftgrug/giftgrug/internal/quota"
	"github.com/giftgrug/giftgrug/internal/reminder"
	"github.com/giftgrug/giftgrug/internal/storage"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewDefaultLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	middleware.SetJWTSecret(cfg.Auth.JWTSecret)

	db, err := database.New(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisCache, err := cache.NewCache(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	// Queue and object storage are optional; without them reminders and
	// image uploads are disabled but the rest of the site serves.
	var q *queue.Queue
	if q, err = queue.New(cfg.Queue); err != nil {
		logger.Warnf("Queue unavailable, reminders disabled: %v", err)
		q = nil
	} else {
		defer q.Close()
	}

	var stor *storage.Storage
	if stor, err = storage.New(cfg.Storage); err != nil {
		logger.Warnf("Object storage unavailable, image uploads disabled: %v", err)
		stor = nil
	}

	mode := quota.Enforced
	if !cfg.Quota.Enforced {
		logger.Warn("Daily message quota disabled")
		mode = quota.Disabled
	}

	profiles := database.NewProfileRepository(db)
	sunRepo := database.NewSpecialSunRepository(db)

	api := &API{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		products:  database.NewProductRepository(db),
		scribbles: database.NewScribbleRepository(db),
		wishlists: database.NewWishlistRepository(db),
		suns:      sunRepo,
		profiles:  profiles,
		usage:     database.NewUsageRepository(db),
		cache:     redisCache,
		storage:   stor,
		completer: chat.NewClient(cfg.Chat.APIKey, cfg.Chat.Model, cfg.Chat.StreamBuffer),
		resolver:  identity.NewResolver(cfg.Quota.IPSalt, profiles),
		policy:    quota.NewPolicy(cfg.Quota.FreeLimit, cfg.Quota.SignedInLimit, mode),
	}

	if !api.completer.Configured() {
		logger.Warn("Chat API key not configured, chat endpoint degraded")
	}

	router := setupRouter(api)

	if q != nil {
		scanner := reminder.NewScanner(sunRepo, q, logger, cfg.Reminder.ScanInterval)
		scanner.Start()
		defer scanner.Stop()
	}

	var metricsSrv *metrics.Server
	if cfg.Metrics.Enabled {
		metricsSrv = metrics.NewServer(cfg.Metrics.Port)
		go func() {
			if err := metricsSrv.Start(); err != nil {
				logger.ErrorWithErr("Metrics server failed", err)
			}
		}()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("Starting API server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logger.ErrorWithErr("Metrics server shutdown failed", err)
		}
	}

	logger.Info("Server stopped")
}
