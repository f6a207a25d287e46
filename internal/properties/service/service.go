// Package service implements property business logic.
package service

import (
	"context"

	"leasewell_backend/internal/properties/repository"
	"leasewell_backend/platform/apperr"
	"leasewell_backend/platform/httpkit"
	"leasewell_backend/platform/logger"

	"github.com/google/uuid"
)

// Service implements property use cases on top of the repository.
type Service struct {
	repo *repository.Repository
	log  *logger.Logger
}

// New creates a new properties service.
func New(repo *repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

const defaultPropertyType = "apartment"

// Create adds a property owned by the calling landlord.
func (s *Service) Create(ctx context.Context, id httpkit.Identity, params repository.CreateParams) (repository.Property, error) {
	if !id.IsLandlord() {
		return repository.Property{}, apperr.Forbidden("only landlords can create properties")
	}
	if params.PropertyType == "" {
		params.PropertyType = defaultPropertyType
	}
	params.LandlordID = id.UserID()

	p, err := s.repo.Create(ctx, params)
	if err != nil {
		return repository.Property{}, err
	}

	s.log.Info("property created", "propertyId", p.ID, "landlordId", p.LandlordID)
	return p, nil
}

// Get returns a single property the caller is allowed to see. Landlords see
// their own properties; tenants see properties they hold a lease on.
func (s *Service) Get(ctx context.Context, id httpkit.Identity, propertyID uuid.UUID) (repository.Property, error) {
	p, err := s.repo.GetByID(ctx, propertyID)
	if err != nil {
		return repository.Property{}, err
	}

	if id.IsLandlord() {
		if p.LandlordID != id.UserID() {
			return repository.Property{}, apperr.NotFound("property not found")
		}
		return p, nil
	}

	leased, err := s.repo.TenantHasLease(ctx, propertyID, id.UserID())
	if err != nil {
		return repository.Property{}, err
	}
	if !leased {
		return repository.Property{}, apperr.NotFound("property not found")
	}
	return p, nil
}

// List returns properties scoped to the caller's role.
func (s *Service) List(ctx context.Context, id httpkit.Identity) ([]repository.Property, error) {
	if id.IsLandlord() {
		return s.repo.ListByLandlord(ctx, id.UserID())
	}
	return s.repo.ListByTenant(ctx, id.UserID())
}

// Update applies partial changes to a property owned by the calling landlord.
func (s *Service) Update(ctx context.Context, id httpkit.Identity, propertyID uuid.UUID, params repository.UpdateParams) (repository.Property, error) {
	if !id.IsLandlord() {
		return repository.Property{}, apperr.Forbidden("only landlords can update properties")
	}
	return s.repo.Update(ctx, propertyID, id.UserID(), params)
}

// Delete removes a property owned by the calling landlord.
func (s *Service) Delete(ctx context.Context, id httpkit.Identity, propertyID uuid.UUID) error {
	if !id.IsLandlord() {
		return apperr.Forbidden("only landlords can delete properties")
	}
	if err := s.repo.Delete(ctx, propertyID, id.UserID()); err != nil {
		return err
	}
	s.log.Info("property deleted", "propertyId", propertyID, "landlordId", id.UserID())
	return nil
}
