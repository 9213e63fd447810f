package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/product_catalog/internal/config"
	"github.com/Skotchmaster/product_catalog/internal/db"
	"github.com/Skotchmaster/product_catalog/internal/es"
	"github.com/Skotchmaster/product_catalog/internal/handlers"
	"github.com/Skotchmaster/product_catalog/internal/logging"
	authmw "github.com/Skotchmaster/product_catalog/internal/middleware/auth"
	"github.com/Skotchmaster/product_catalog/internal/mykafka"
	"github.com/Skotchmaster/product_catalog/internal/repo"
	"github.com/Skotchmaster/product_catalog/internal/service"
	"github.com/Skotchmaster/product_catalog/internal/tokens"
	httpserver "github.com/Skotchmaster/product_catalog/internal/transport/http"
)

const kafkaSetupTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx := context.Background()

	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db_init_failed", "error", err)
		os.Exit(1)
	}

	r := &repo.GormRepo{DB: gdb}
	tm := tokens.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	var prod *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		topicsCtx, cancel := context.WithTimeout(ctx, kafkaSetupTimeout)
		err := mykafka.EnsureTopics(topicsCtx, cfg.KafkaBrokers[0], mykafka.TopicUserEvents, mykafka.TopicProductEvents)
		cancel()
		if err != nil {
			logger.Warn("kafka_topics_not_ensured", "error", err)
		}
		prod, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.Error("kafka_init_failed", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Info("kafka_disabled")
	}

	catalog := &service.CatalogService{Repo: r, Events: prod}
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			logger.Error("es_init_failed", "error", err)
			os.Exit(1)
		}
		idx := es.NewIndex(esClient, cfg.ESIndex)
		catalog.Index = idx
		catalog.Searcher = idx
	} else {
		logger.Info("es_disabled", "search", "database")
	}

	authSvc := &service.AuthService{Repo: r, Tokens: tm, Events: prod}
	if err := authSvc.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logger.Error("ensure_admin_failed", "error", err)
		os.Exit(1)
	}

	deps := &httpserver.Deps{
		AuthHandler:    &handlers.AuthHTTP{Svc: authSvc},
		CatalogHandler: &handlers.CatalogHTTP{Svc: catalog},
		Authorizer:     &authmw.Authorizer{Users: r, Tokens: tm},
		Ready:          func(ctx context.Context) error { return db.Ping(ctx, gdb) },
	}
	e := httpserver.New(logger, cfg.BodyLimit, deps)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("http_server_started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting_down")
	shutdown(logger, srv, gdb, prod)
	logger.Info("shutdown_complete")
}

func shutdown(logger *slog.Logger, srv *http.Server, gdb *gorm.DB, prod *mykafka.Producer) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_error", "error", err)
	}
	if err := prod.Close(); err != nil {
		logger.Error("kafka_close_error", "error", err)
	}
}
