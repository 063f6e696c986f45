package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-portal/internal/audit"
	"github.com/BruksfildServices01/clinic-portal/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-portal/internal/db"
	"github.com/BruksfildServices01/clinic-portal/internal/infra/idempotency"
	"github.com/BruksfildServices01/clinic-portal/internal/infra/imagestore"
	"github.com/BruksfildServices01/clinic-portal/internal/logger"
	"github.com/BruksfildServices01/clinic-portal/internal/middleware"
	"github.com/BruksfildServices01/clinic-portal/internal/routes"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg)
	defer func() { _ = log.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db := dbpkg.NewDB(cfg, log)

	auditDispatcher := audit.NewDispatcher(audit.New(db, log), log)

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.CORSMiddleware(cfg.AllowedOrigin),
	)

	routes.RegisterRoutes(r, routes.Deps{
		DB:          db,
		Config:      cfg,
		Log:         log,
		Audit:       auditDispatcher,
		Idempotency: newIdempotencyStore(cfg, log),
		Images:      newImageStore(cfg, log),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	auditDispatcher.Close()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newIdempotencyStore(cfg *config.Config, log *zap.Logger) idempotency.Store {
	if cfg.RedisURL == "" {
		return idempotency.NewMemoryStore(cfg.IdempotencyTTL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rdb, err := idempotency.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn("redis unavailable, keeping idempotency keys in memory", zap.Error(err))
		return idempotency.NewMemoryStore(cfg.IdempotencyTTL)
	}
	return idempotency.NewRedisStore(rdb, cfg.IdempotencyTTL)
}

func newImageStore(cfg *config.Config, log *zap.Logger) imagestore.Store {
	if cfg.ImageStorage != config.ImageStorageS3 {
		return imagestore.NewDBStore()
	}
	if cfg.S3Bucket == "" {
		log.Fatal("IMAGE_STORAGE=s3 requires S3_BUCKET")
	}
	return imagestore.NewS3Store(imagestore.NewS3Client(cfg), cfg.S3Bucket, cfg.S3PublicURL)
}
