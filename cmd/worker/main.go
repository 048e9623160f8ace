package main

import (
	"log/slog"
	"os"

	"github.com/hibiken/asynq"

	"github.com/nikhilbhutani/phonemizer/internal/config"
	"github.com/nikhilbhutani/phonemizer/internal/phonemizer"
	"github.com/nikhilbhutani/phonemizer/internal/queue"
	"github.com/nikhilbhutani/phonemizer/internal/queue/workers"
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
		slog.Warn("phonemizer binary unavailable, jobs will fail until it is installed",
			"bin", espeak.Name(), "error", err)
	}

	srv := asynq.NewServer(
		queue.RedisOpt(cfg.Redis),
		asynq.Config{
			Concurrency: cfg.Queue.Concurrency,
			Queues:      map[string]int{queue.QueueDefault: 1},
		},
	)

	worker := workers.NewPhonemizeWorker(espeak)

	slog.Info("starting worker", "concurrency", cfg.Queue.Concurrency, "phonemizer", espeak.Name())
	if err := srv.Run(queue.NewServeMux(worker)); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
