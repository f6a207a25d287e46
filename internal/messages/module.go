// Package messages provides landlord-tenant direct messaging per property.
package messages

import (
	apphttp "leasewell_backend/internal/http"
	"leasewell_backend/internal/notifications"
	"leasewell_backend/platform/logger"
	"leasewell_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the messages domain module.
type Module struct {
	handler *Handler
}

// NewModule creates a new messages module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, notifier *notifications.Service, val *validator.Validator, log *logger.Logger) *Module {
	repo := NewRepository(pool)
	h := NewHandler(repo, notifier, val, log)

	return &Module{handler: h}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "messages"
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	rg := ctx.Protected.Group("/messages")
	rg.POST("", m.handler.Send)
	rg.GET("", m.handler.ListConversation)
	rg.POST("/:id/read", m.handler.MarkRead)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
