package scheduler

import (
	"context"
	"time"

	"leasewell_backend/internal/maintenance/agent"
	"leasewell_backend/internal/maintenance/repository"
	"leasewell_backend/internal/maintenance/service"
	"leasewell_backend/platform/logger"

	"github.com/google/uuid"
)

// Shopping runs are bounded so an abandoned run cannot leak a goroutine.
const inlineRunTimeout = 5 * time.Minute

// InlineDispatcher runs the shopping pipeline in a goroutine inside the API
// process. It serves deployments without Redis; the asynq Client replaces it
// when a queue is configured.
type InlineDispatcher struct {
	repo    *repository.Repository
	shopper *agent.Shopper
	log     *logger.Logger
}

// NewInlineDispatcher creates an in-process dispatcher.
func NewInlineDispatcher(repo *repository.Repository, shopper *agent.Shopper, log *logger.Logger) *InlineDispatcher {
	return &InlineDispatcher{repo: repo, shopper: shopper, log: log}
}

// DispatchShopping starts the pipeline in the background. The run detaches
// from the request context so an early HTTP response does not cancel it.
func (d *InlineDispatcher) DispatchShopping(_ context.Context, requestID uuid.UUID) error {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), inlineRunTimeout)
		defer cancel()

		details, err := d.repo.GetByID(ctx, requestID)
		if err != nil {
			d.log.Error("inline shopping run could not load request", "maintenanceRequestId", requestID, "error", err)
			return
		}
		if err := d.shopper.Run(ctx, service.ToAgentRequest(details)); err != nil {
			d.log.Error("inline shopping run failed", "maintenanceRequestId", requestID, "error", err)
		}
	}()
	return nil
}
