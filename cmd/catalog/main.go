package main

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"CourseCatalog/internal/catalog"
	"CourseCatalog/internal/config"
	"CourseCatalog/pkg/kit"
)

func main() {
	service := "catalog"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	shutdown, err := kit.SetupTracing(context.Background(), "course-catalog-service")
	if err != nil {
		log.Fatal("tracing setup", zap.Error(err))
	}
	defer func() { _ = shutdown(context.Background()) }()

	store, err := newStore(cfg)
	if err != nil {
		log.Fatal("store setup", zap.Error(err))
	}

	registry := prometheus.NewRegistry()

	s := &catalog.Server{
		Store:   store,
		Log:     log,
		Flashes: catalog.NewFlashes(),
		Metrics: catalog.NewMetrics(registry),
	}

	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       registry,
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
	})

	if err := kit.RunHTTPServer(":"+cfg.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func newStore(cfg config.Config) (catalog.Store, error) {
	if cfg.DatabaseURL == "" {
		return catalog.NewFileStore(cfg.CourseFile), nil
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return catalog.NewPostgresStore(db), nil
}
