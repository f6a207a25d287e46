// Package payments provides the rent payment domain module backed by Stripe.
package payments

import (
	apphttp "leasewell_backend/internal/http"
	"leasewell_backend/internal/notifications"
	"leasewell_backend/internal/payments/handler"
	"leasewell_backend/internal/payments/repository"
	"leasewell_backend/internal/payments/service"
	"leasewell_backend/platform/config"
	"leasewell_backend/platform/logger"
	"leasewell_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stripe/stripe-go/v76/client"
)

// Module represents the payments domain module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates a new payments module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, cfg config.StripeConfig, leases service.LeaseReader,
	profiles service.ProfileReader, notifier *notifications.Service,
	log *logger.Logger, val *validator.Validator) *Module {
	var stripeClient *client.API
	if cfg.IsStripeEnabled() {
		stripeClient = &client.API{}
		stripeClient.Init(cfg.GetStripeSecretKey(), nil)
	}

	repo := repository.New(pool)
	svc := service.New(repo, leases, profiles, notifier, stripeClient, cfg.GetStripeWebhookSecret(), log)
	h := handler.New(svc, val)

	return &Module{handler: h}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "payments"
}

// RegisterRoutes registers the module's routes. The Stripe webhook bypasses
// authentication; everything else requires a valid access token.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/payments"))
	ctx.V1.POST("/payments/webhook", m.handler.Webhook)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
