// Package invites provides tenant invitations with emailed accept links.
package invites

import (
	"context"

	authrepo "leasewell_backend/internal/auth/repository"
	"leasewell_backend/internal/email"
	apphttp "leasewell_backend/internal/http"
	"leasewell_backend/internal/invites/handler"
	"leasewell_backend/internal/invites/repository"
	"leasewell_backend/internal/invites/service"
	"leasewell_backend/internal/notifications"
	"leasewell_backend/platform/config"
	"leasewell_backend/platform/logger"
	"leasewell_backend/platform/validator"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the invites domain module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates a new invites module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, cfg config.NotificationConfig, properties service.PropertyReader,
	profiles *authrepo.Repository, sender *email.Sender, notifier *notifications.Service,
	log *logger.Logger, val *validator.Validator) *Module {
	landlordName := func(ctx context.Context, id uuid.UUID) (string, error) {
		profile, err := profiles.GetProfileByID(ctx, id)
		if err != nil {
			return "", err
		}
		return profile.FullName, nil
	}

	repo := repository.New(pool)
	svc := service.New(repo, properties, sender, notifier, landlordName, cfg.GetAppBaseURL(), log)
	h := handler.New(svc, val)

	return &Module{handler: h}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "invites"
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/invites"))
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
