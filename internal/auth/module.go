// Package auth provides the authentication domain module.
package auth

import (
	"leasewell_backend/internal/auth/handler"
	"leasewell_backend/internal/auth/repository"
	"leasewell_backend/internal/auth/service"
	apphttp "leasewell_backend/internal/http"
	"leasewell_backend/platform/config"
	"leasewell_backend/platform/logger"
	"leasewell_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the auth domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repository
}

// NewModule creates a new auth module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc, repo: repo}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for cross-module profile reads.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(authGroup, ctx.AuthMiddleware)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
