package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nikhilbhutani/phonemizer/internal/api"
	"github.com/nikhilbhutani/phonemizer/internal/api/handlers"
	"github.com/nikhilbhutani/phonemizer/internal/config"
	"github.com/nikhilbhutani/phonemizer/internal/phonemizer"
	"github.com/nikhilbhutani/phonemizer/internal/queue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	espeak := phonemizer.New(phonemizer.Config{
		BinPath: cfg.Phonemizer.BinPath,
		Voice:   cfg.Phonemizer.Voice,
		Timeout: cfg.Phonemizer.Timeout,
	})
	if err := espeak.Available(); err != nil {
		slog.Warn("phonemizer binary unavailable, requests will fail until it is installed",
			"bin", espeak.Name(), "error", err)
	}

	// Job queue (optional)
	var jobs handlers.JobQueue
	var rdb *redis.Client
	if cfg.Queue.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			slog.Warn("redis unavailable, job routes will fail", "error", err)
		}

		qc := queue.NewClient(cfg.Redis, cfg.Queue, cfg.Phonemizer.Timeout)
		defer qc.Close()
		jobs = qc
	}

	router := api.NewRouter(cfg, espeak, jobs, rdb)
	defer router.Close()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("starting API server", "addr", cfg.Addr(), "phonemizer", espeak.Name(), "queue", cfg.Queue.Enabled)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}
