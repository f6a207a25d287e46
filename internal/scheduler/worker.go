package scheduler

import (
	"context"
	"fmt"

	"leasewell_backend/internal/maintenance/agent"
	"leasewell_backend/internal/maintenance/repository"
	"leasewell_backend/internal/maintenance/service"
	"leasewell_backend/platform/config"
	"leasewell_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Worker consumes shopping tasks and runs the agent pipeline.
type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	repo    *repository.Repository
	shopper *agent.Shopper
	log     *logger.Logger
}

// NewWorker creates an asynq server wired to the shopping pipeline.
func NewWorker(cfg config.SchedulerConfig, repo *repository.Repository, shopper *agent.Shopper, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:  server,
		mux:     mux,
		repo:    repo,
		shopper: shopper,
		log:     log,
	}

	mux.HandleFunc(TaskShopForContractors, w.handleShopForContractors)

	return w, nil
}

// Run starts the worker and blocks until shutdown.
func (w *Worker) Run() error {
	return w.server.Run(w.mux)
}

// Shutdown stops the worker gracefully.
func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func (w *Worker) handleShopForContractors(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseShopForContractorsPayload(task)
	if err != nil {
		return err
	}

	requestID, err := uuid.Parse(payload.MaintenanceRequestID)
	if err != nil {
		return err
	}

	details, err := w.repo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	return w.shopper.Run(ctx, service.ToAgentRequest(details))
}
