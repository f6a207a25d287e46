// Package quotes provides the contractor quote domain module.
package quotes

import (
	apphttp "leasewell_backend/internal/http"
	"leasewell_backend/internal/quotes/handler"
	"leasewell_backend/internal/quotes/repository"
	"leasewell_backend/internal/quotes/service"
	"leasewell_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the quotes domain module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repository
}

// NewModule creates a new quotes module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, requests service.RequestReader, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, requests, log)
	h := handler.New(svc)

	return &Module{handler: h, repo: repo}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "quotes"
}

// Repository returns the repository; the shopping agent writes quotes
// through it.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/maintenance-requests"))
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
