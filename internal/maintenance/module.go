// Package maintenance provides the maintenance request domain module and the
// contractor shopping agent.
package maintenance

import (
	apphttp "leasewell_backend/internal/http"
	"leasewell_backend/internal/maintenance/agent"
	"leasewell_backend/internal/maintenance/handler"
	"leasewell_backend/internal/maintenance/repository"
	"leasewell_backend/internal/maintenance/service"
	"leasewell_backend/platform/logger"
	"leasewell_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the maintenance domain module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repository
	service *service.Service
}

// NewModule creates a new maintenance module with all dependencies wired.
// The dispatcher decides whether shopping runs on the worker or in-process.
func NewModule(pool *pgxpool.Pool, properties service.PropertyReader, notifier agent.Notifier,
	dispatcher service.Dispatcher, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, properties, notifier, dispatcher, log)
	h := handler.New(svc, val)

	return &Module{handler: h, repo: repo, service: svc}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "maintenance"
}

// Repository returns the repository for the worker and cross-module reads.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/maintenance-requests"))
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
