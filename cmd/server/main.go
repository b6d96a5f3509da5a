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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/petompp/internal/auth"
	"github.com/Skotchmaster/petompp/internal/blob"
	"github.com/Skotchmaster/petompp/internal/config"
	"github.com/Skotchmaster/petompp/internal/db"
	"github.com/Skotchmaster/petompp/internal/es"
	"github.com/Skotchmaster/petompp/internal/handlers"
	"github.com/Skotchmaster/petompp/internal/logging"
	authmw "github.com/Skotchmaster/petompp/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/petompp/internal/middleware/logging"
	"github.com/Skotchmaster/petompp/internal/models"
	"github.com/Skotchmaster/petompp/internal/mykafka"
	"github.com/Skotchmaster/petompp/internal/query"
	"github.com/Skotchmaster/petompp/internal/repo"
	"github.com/Skotchmaster/petompp/internal/service"
	httpserver "github.com/Skotchmaster/petompp/internal/transport/http"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.APISecret, "API_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx := context.Background()

	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db_open_failed", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb); err != nil {
		logger.Error("db_migrate_failed", "error", err)
		os.Exit(1)
	}
	store := repo.New(gdb)

	var publisher mykafka.Publisher = mykafka.NopPublisher{}
	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = mykafka.NewProducer(cfg.KafkaBrokers)
		publisher = producer
	} else {
		logger.Info("kafka disabled, events are dropped")
	}

	resources := &service.ResourceService{Repo: store, Publisher: publisher}
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			logger.Error("es_connect_failed", "error", err)
			os.Exit(1)
		}
		resources.Search = es.NewResourceIndex(esClient, cfg.ESIndex)
		go func() {
			n, err := resources.Reindex(ctx)
			if err != nil {
				logger.Warn("reindex_failed", "error", err)
				return
			}
			logger.Info("reindex_done", "resources", n)
		}()
	} else {
		logger.Info("elasticsearch disabled, search is unavailable")
	}

	s3Client, err := blob.NewS3Client(ctx, cfg)
	if err != nil {
		logger.Error("s3_client_failed", "error", err)
		os.Exit(1)
	}
	objects := blob.NewStore(s3Client)

	codec := auth.NewTokenCodec(cfg.APISecret, nil)
	limit := cfg.UploadLimitBytes()

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))

	deps := httpserver.Deps{
		Guard: authmw.NewGuard(codec),
		HealthHandler: &handlers.HealthHandler{
			DB:      gdb,
			Store:   objects,
			Buckets: []string{cfg.ImageBucket, cfg.BlogBucket},
		},
		UserHandler: &handlers.UserHandler{Svc: &service.UserService{
			Repo:      store,
			Codec:     codec,
			Publisher: publisher,
			Columns:   query.MustRegistry(&models.User{}, service.UserColumns),
		}},
		ResourceHandler: &handlers.ResourceHandler{Svc: resources},
		SettingsHandler: &handlers.SettingsHandler{Svc: &service.SettingsService{Repo: store}},
		ImageHandler:    &handlers.ImageHandler{Images: blob.NewImages(objects, cfg.ImageBucket), Limit: limit},
		BlogHandler:     &handlers.BlogHandler{Blog: blob.NewBlog(objects, cfg.BlogBucket, nil)},
		BlobHandler:     &handlers.BlobHandler{Containers: blob.NewContainers(objects, cfg.BlobContainers), Limit: limit},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("http_server_started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db_close_error", "error", err)
		}
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka_close_error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
