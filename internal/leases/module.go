// Package leases provides the lease agreement domain module.
package leases

import (
	apphttp "leasewell_backend/internal/http"
	"leasewell_backend/internal/leases/handler"
	"leasewell_backend/internal/leases/repository"
	"leasewell_backend/internal/leases/service"
	"leasewell_backend/platform/logger"
	"leasewell_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the leases domain module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repository
}

// NewModule creates a new leases module with all dependencies wired.
// Profile and property lookups come from the owning modules' repositories.
func NewModule(pool *pgxpool.Pool, profiles service.ProfileFinder, properties service.PropertyReader, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, profiles, properties, log)
	h := handler.New(svc, val)

	return &Module{handler: h, repo: repo}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "leases"
}

// Repository returns the repository for cross-module lease reads.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/leases"))
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
