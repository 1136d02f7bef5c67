package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/avencia/tika-batch/internal/common"
	"github.com/avencia/tika-batch/internal/server"
	"github.com/avencia/tika-batch/internal/store"
)

func main() {
	configFile := flag.String("config", "", "optional YAML config file overlaying environment values")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *configFile != "" {
		if err := common.LoadConfigFile(cfg, *configFile); err != nil {
			logger.Error("failed to load config file", "path", *configFile, "error", err)
			os.Exit(1)
		}
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	extraction, err := cfg.Tika.Extraction()
	if err != nil {
		logger.Error("invalid extraction configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var jobs store.JobRepository
	if cfg.Store.DSN != "" {
		db, err := store.Open(ctx, cfg.Store.DSN)
		if err != nil {
			logger.Error("failed to open job store", "dsn", cfg.Store.DSN, "error", err)
			os.Exit(1)
		}
		defer db.Close()
		jobs = store.NewJobRepository(db, logger)
		logger.Info("job history enabled", "dsn", cfg.Store.DSN)
	}

	svc := server.NewService(extraction, jobs, logger)
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.NewRouter(svc, logger),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("listening", "addr", cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
