package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"transcribe/internal/app"
	"transcribe/internal/config"
	"transcribe/internal/logging"
	"transcribe/internal/otel"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	logger, loc := logging.Setup(cfg.LogTimezone)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		logger.Error("tracing_init_failed", "error", err.Error())
		os.Exit(1)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	a, err := app.Open(ctx, cfg, logger, loc)
	if err != nil {
		logger.Error("startup_failed", "error", err.Error())
		os.Exit(1)
	}
	defer a.Close()

	server, err := a.NewServer()
	if err != nil {
		logger.Error("startup_failed", "error", err.Error())
		os.Exit(1)
	}

	go func() {
		<-ctx.Done()
		_ = server.ShutdownWithTimeout(10 * time.Second)
	}()

	addr := ":" + cfg.Port
	logger.Info("server_starting", "addr", addr, "db_driver", cfg.Database.Driver, "adapter_backend", cfg.Transcription.Backend)
	if err := server.Listen(addr); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server_failed", "error", err.Error())
	}
}
