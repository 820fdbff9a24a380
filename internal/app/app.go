// Package app assembles the adapter, its repositories and the HTTP server from configuration.
// Both binaries build on it.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"transcribe/internal/adapter"
	"transcribe/internal/config"
	"transcribe/internal/database"
	"transcribe/internal/database/migration"
	handlers "transcribe/internal/http/handler"
	"transcribe/internal/http/middleware"
	"transcribe/internal/model"
	"transcribe/internal/repository"
	"transcribe/internal/repository/postgres"
	"transcribe/internal/repository/sqlite"
	"transcribe/internal/service"
	"transcribe/internal/storage"
)

// App holds the wired components of one process.
type App struct {
	Config   *config.AppConfig
	Logger   *slog.Logger
	Location *time.Location
	DB       *sql.DB
	Store    repository.Store
	Storage  storage.Storage
	Adapter  adapter.Adapter
	Service  service.TranscriptionService
	Registry *prometheus.Registry
}

// ConnectDatabase opens the configured metadata store and migrates its schema.
func ConnectDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, migration.Dialect, error) {
	db, dialect, err := database.Open(cfg)
	if err != nil {
		return nil, "", fmt.Errorf("connect to database: %w", err)
	}

	target := cfg.Host
	if dialect == migration.SQLite {
		target = cfg.SQLitePath
	}
	if err := migration.EnsureMigrated(ctx, db, dialect, target, logger); err != nil {
		db.Close()
		return nil, "", err
	}
	return db, dialect, nil
}

// NewStore returns the repositories matching dialect.
func NewStore(db *sql.DB, dialect migration.Dialect) repository.Store {
	if dialect == migration.SQLite {
		return sqlite.NewStore(db)
	}
	return postgres.NewStore(db)
}

// Open connects every dependency named in cfg and builds the adapter and service.
func Open(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger, loc *time.Location) (*App, error) {
	db, dialect, err := ConnectDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	a, err := build(cfg, db, NewStore(db, dialect), logger, loc)
	if err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

func build(cfg *config.AppConfig, db *sql.DB, store repository.Store, logger *slog.Logger, loc *time.Location) (*App, error) {
	objStore, err := storage.New(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("initialize object storage: %w", err)
	}

	bindings, err := config.LoadFieldBindings(cfg.Transcription.BindingsFile)
	if err != nil {
		return nil, err
	}

	defaultType, err := model.ParseImportType(cfg.Transcription.DefaultImportType)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := adapter.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	ad, err := adapter.New(cfg.Transcription.Backend, adapter.Deps{
		Store:      store,
		Storage:    objStore,
		ImportType: adapter.OptionImportType{Options: store.Options, Default: defaultType},
		Bindings:   bindings,
		Logger:     logger,
		Metrics:    metrics,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		Location: loc,
		DB:       db,
		Store:    store,
		Storage:  objStore,
		Adapter:  ad,
		Service:  service.NewTranscriptionService(ad),
		Registry: reg,
	}, nil
}

// NewServer builds the Fiber app with the global middleware chain and all routes.
func (a *App) NewServer() (*fiber.App, error) {
	server := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	prom, err := middleware.NewPrometheusMiddleware(a.Registry)
	if err != nil {
		return nil, err
	}

	// RequestID first so logs and spans of every later layer carry it
	server.Use(middleware.RequestID())
	server.Use(otelfiber.Middleware())
	server.Use(prom.Handler())
	server.Use(middleware.Logger(a.Location))

	handlers.RegisterRoutes(server, a.DB, a.Adapter, a.Service, a.Registry)
	return server, nil
}

// Close releases the database handle.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
