package notifications

import (
	"context"

	"leasewell_backend/internal/maintenance/agent"
	"leasewell_backend/platform/events"
	"leasewell_backend/platform/logger"

	"github.com/google/uuid"
)

// NotificationCreated is published on the event bus after a notification is
// stored, for future delivery channels.
type NotificationCreated struct {
	events.BaseEvent
	Notification Notification
}

// EventName identifies the event on the bus.
func (NotificationCreated) EventName() string { return "notification.created" }

// Service writes notifications on behalf of other modules.
type Service struct {
	repo *Repository
	bus  events.Bus
	log  *logger.Logger
}

// NewService creates a new notifications service.
func NewService(repo *Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// Create stores a notification and publishes the created event.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, title, message, ntype string, metadata map[string]any) error {
	n, err := s.repo.Create(ctx, userID, title, message, ntype, metadata)
	if err != nil {
		return err
	}
	s.bus.Publish(ctx, NotificationCreated{BaseEvent: events.NewBaseEvent(), Notification: n})
	return nil
}

// Notify writes a maintenance-typed notification, satisfying the shopping
// agent's Notifier port.
func (s *Service) Notify(ctx context.Context, userID uuid.UUID, title, message string, metadata map[string]any) error {
	return s.Create(ctx, userID, title, message, TypeMaintenance, metadata)
}

var _ agent.Notifier = (*Service)(nil)
