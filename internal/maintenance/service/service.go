// Package service implements maintenance request business logic and the
// agent deploy flow.
package service

import (
	"context"
	"fmt"

	"leasewell_backend/internal/maintenance/agent"
	"leasewell_backend/internal/maintenance/repository"
	proprepo "leasewell_backend/internal/properties/repository"
	"leasewell_backend/platform/apperr"
	"leasewell_backend/platform/httpkit"
	"leasewell_backend/platform/logger"

	"github.com/google/uuid"
)

// PropertyReader loads properties for authorization checks.
type PropertyReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (proprepo.Property, error)
	TenantHasLease(ctx context.Context, propertyID, tenantID uuid.UUID) (bool, error)
}

// Dispatcher hands a shopping run to the background worker. Implementations
// either enqueue a task or run the pipeline in-process.
type Dispatcher interface {
	DispatchShopping(ctx context.Context, requestID uuid.UUID) error
}

// CreateInput carries the caller-supplied fields for a new request.
type CreateInput struct {
	PropertyID  uuid.UUID
	Title       string
	Description string
	Category    string
	Priority    string
}

// Service implements maintenance request use cases.
type Service struct {
	repo       *repository.Repository
	properties PropertyReader
	notifier   agent.Notifier
	dispatcher Dispatcher
	log        *logger.Logger
}

// New creates a new maintenance service.
func New(repo *repository.Repository, properties PropertyReader, notifier agent.Notifier, dispatcher Dispatcher, log *logger.Logger) *Service {
	return &Service{repo: repo, properties: properties, notifier: notifier, dispatcher: dispatcher, log: log}
}

// ToAgentRequest maps a stored request to the pipeline's view of it.
func ToAgentRequest(m repository.RequestDetails) agent.Request {
	return agent.Request{
		ID:              m.ID,
		LandlordID:      m.LandlordID,
		Title:           m.Title,
		Description:     m.Description,
		Category:        m.Category,
		Priority:        m.Priority,
		PropertyAddress: m.PropertyAddress,
		PropertyCity:    m.PropertyCity,
		PropertyState:   m.PropertyState,
		PropertyZipCode: m.PropertyZipCode,
		PropertyUnit:    m.PropertyUnitNumber,
	}
}

// Create files a maintenance request. Only tenants with a lease on the
// property can file against it; the landlord is resolved from the property.
func (s *Service) Create(ctx context.Context, id httpkit.Identity, input CreateInput) (repository.RequestDetails, error) {
	if !id.IsTenant() {
		return repository.RequestDetails{}, apperr.Forbidden("only tenants can file maintenance requests")
	}

	property, err := s.properties.GetByID(ctx, input.PropertyID)
	if err != nil {
		return repository.RequestDetails{}, err
	}

	leased, err := s.properties.TenantHasLease(ctx, input.PropertyID, id.UserID())
	if err != nil {
		return repository.RequestDetails{}, err
	}
	if !leased {
		return repository.RequestDetails{}, apperr.Forbidden("no lease found for this property")
	}

	m, err := s.repo.Create(ctx, repository.CreateParams{
		PropertyID:  input.PropertyID,
		TenantID:    id.UserID(),
		LandlordID:  property.LandlordID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Priority:    input.Priority,
	})
	if err != nil {
		return repository.RequestDetails{}, err
	}

	s.log.Info("maintenance request created", "maintenanceRequestId", m.ID, "propertyId", m.PropertyID)
	return m, nil
}

// Get returns a request the caller is a party to.
func (s *Service) Get(ctx context.Context, id httpkit.Identity, requestID uuid.UUID) (repository.RequestDetails, error) {
	m, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return repository.RequestDetails{}, err
	}
	if m.LandlordID != id.UserID() && m.TenantID != id.UserID() {
		return repository.RequestDetails{}, apperr.NotFound("maintenance request not found")
	}
	return m, nil
}

// List returns requests scoped to the caller's role.
func (s *Service) List(ctx context.Context, id httpkit.Identity, filters repository.ListFilters) ([]repository.RequestDetails, error) {
	if id.IsLandlord() {
		return s.repo.ListByLandlord(ctx, id.UserID(), filters)
	}
	return s.repo.ListByTenant(ctx, id.UserID(), filters)
}

// Update applies partial changes. Tenants may edit the describing fields of
// their own requests; only the landlord can change the lifecycle status.
func (s *Service) Update(ctx context.Context, id httpkit.Identity, requestID uuid.UUID, params repository.UpdateParams) (repository.RequestDetails, error) {
	m, err := s.Get(ctx, id, requestID)
	if err != nil {
		return repository.RequestDetails{}, err
	}
	if params.Status != nil && id.UserID() != m.LandlordID {
		return repository.RequestDetails{}, apperr.Forbidden("only the landlord can change the request status")
	}
	return s.repo.Update(ctx, requestID, params)
}

// Delete removes a request. Only the filing tenant or the landlord may delete.
func (s *Service) Delete(ctx context.Context, id httpkit.Identity, requestID uuid.UUID) error {
	if _, err := s.Get(ctx, id, requestID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, requestID)
}

// Deploy starts the contractor shopping agent for a request. The caller must
// be the request's landlord. The conditional transition to shopping rejects a
// second deploy while a run is active.
func (s *Service) Deploy(ctx context.Context, id httpkit.Identity, requestID uuid.UUID) (repository.RequestDetails, error) {
	if !id.IsLandlord() {
		return repository.RequestDetails{}, apperr.Forbidden("only landlords can deploy the agent")
	}

	m, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return repository.RequestDetails{}, err
	}
	if m.LandlordID != id.UserID() {
		return repository.RequestDetails{}, apperr.NotFound("maintenance request not found")
	}

	if err := s.repo.BeginShopping(ctx, requestID); err != nil {
		return repository.RequestDetails{}, err
	}

	if err := s.notifier.Notify(ctx, m.LandlordID, "Agent started",
		fmt.Sprintf("The contractor shopping agent has started for: %s", m.Title),
		map[string]any{"maintenance_request_id": requestID.String()}); err != nil {
		s.log.Warn("agent start notification failed", "maintenanceRequestId", requestID, "error", err)
	}

	if err := s.dispatcher.DispatchShopping(ctx, requestID); err != nil {
		// The run never started. Marking the request failed clears the
		// shopping status so the landlord can deploy again.
		if stErr := s.repo.SetAgentStatus(ctx, requestID, repository.AgentStatusFailed); stErr != nil {
			s.log.Error("failed to mark agent failed after dispatch error", "maintenanceRequestId", requestID, "error", stErr)
		}
		return repository.RequestDetails{}, apperr.Wrap(apperr.KindInternal, "failed to start the shopping agent", err)
	}

	s.log.AgentEvent("agent_deployed", requestID.String(), 0)

	m.AgentStatus = repository.AgentStatusShopping
	return m, nil
}
