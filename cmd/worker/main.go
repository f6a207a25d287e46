package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leasewell_backend/internal/maintenance/agent"
	maintenancerepo "leasewell_backend/internal/maintenance/repository"
	"leasewell_backend/internal/notifications"
	quotesrepo "leasewell_backend/internal/quotes/repository"
	"leasewell_backend/internal/scheduler"
	"leasewell_backend/migrations"
	"leasewell_backend/platform/config"
	"leasewell_backend/platform/db"
	"leasewell_backend/platform/events"
	"leasewell_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env, "queue", cfg.GetAsynqQueueName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)
	notificationsModule := notifications.NewModule(pool, eventBus, log)

	requestStore := maintenancerepo.New(pool)
	quoteStore := quotesrepo.New(pool)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var directory agent.Directory = agent.NewMockDirectory(rng)
	if cfg.IsPlacesEnabled() {
		directory = agent.NewPlacesDirectory(cfg.GetPlacesAPIKey(), log)
	}

	var generator agent.MessageGenerator = agent.NewTemplateGenerator(rng)
	switch {
	case cfg.GetOpenAIAPIKey() != "":
		generator = agent.NewOpenAIGenerator(cfg.GetOpenAIAPIKey())
	case cfg.GetAnthropicAPIKey() != "":
		generator = agent.NewAnthropicGenerator(cfg.GetAnthropicAPIKey())
	}

	shopper := agent.NewShopper(directory, generator,
		agent.NewSimulatedCollector(rng, nil, nil),
		requestStore, quoteStore, notificationsModule.Service(), log)

	worker, err := scheduler.NewWorker(cfg, requestStore, shopper, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	workerErr := make(chan error, 1)
	go func() {
		workerErr <- worker.Run()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		worker.Shutdown()
	case err := <-workerErr:
		if err != nil {
			log.Error("worker error", "error", err)
			panic("worker error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
