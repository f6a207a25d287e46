// Package notifications provides in-app notifications written by the agent
// pipeline, payments, and invites.
package notifications

import (
	apphttp "leasewell_backend/internal/http"
	"leasewell_backend/platform/events"
	"leasewell_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the notifications domain module.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule creates a new notifications module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) *Module {
	repo := NewRepository(pool)
	svc := NewService(repo, bus, log)
	h := NewHandler(repo)

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "notifications"
}

// Service returns the service so other modules can write notifications.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	rg := ctx.Protected.Group("/notifications")
	rg.GET("", m.handler.List)
	rg.GET("/unread-count", m.handler.UnreadCount)
	rg.POST("/:id/read", m.handler.MarkRead)
	rg.POST("/read-all", m.handler.MarkAllRead)
	rg.DELETE("/:id", m.handler.Delete)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
