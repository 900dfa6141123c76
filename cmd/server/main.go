package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sarama-ai/chunkd/internal/api"
	"github.com/sarama-ai/chunkd/internal/config"
	"github.com/sarama-ai/chunkd/internal/service"
	"github.com/sarama-ai/chunkd/internal/splitter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	sp := splitter.NewHierarchical(splitter.Config{
		ChildSize:    cfg.ChildChunkSize,
		ChildOverlap: cfg.ChunkOverlap,
		ParentSize:   cfg.ParentChunkSize,
	})

	var opts []service.Option
	if cfg.LegacyLinking {
		opts = append(opts, service.WithLegacyLinking())
	}
	svc := service.New(sp, log, opts...)

	srv := api.NewServer(svc, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting chunkd",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"child_chunk_size", cfg.ChildChunkSize,
		"chunk_overlap", cfg.ChunkOverlap,
		"parent_chunk_size", cfg.ParentChunkSize,
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
