// Package properties provides the rental property domain module.
package properties

import (
	apphttp "leasewell_backend/internal/http"
	"leasewell_backend/internal/properties/handler"
	"leasewell_backend/internal/properties/repository"
	"leasewell_backend/internal/properties/service"
	"leasewell_backend/platform/logger"
	"leasewell_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the properties domain module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repository
}

// NewModule creates a new properties module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{handler: h, repo: repo}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "properties"
}

// Repository returns the repository for cross-module property reads.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/properties"))
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
