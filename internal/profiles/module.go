// Package profiles provides profile read/update for the authenticated user.
package profiles

import (
	apphttp "leasewell_backend/internal/http"
	"leasewell_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the profiles domain module.
type Module struct {
	handler *Handler
}

// NewModule creates a new profiles module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := NewRepository(pool)
	return &Module{handler: NewHandler(repo, val)}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "profiles"
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	rg := ctx.Protected.Group("/profile")
	rg.GET("", m.handler.Get)
	rg.PUT("", m.handler.Update)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
