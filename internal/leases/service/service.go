// Package service implements lease business logic.
package service

import (
	"context"
	"time"

	authrepo "leasewell_backend/internal/auth/repository"
	"leasewell_backend/internal/leases/repository"
	proprepo "leasewell_backend/internal/properties/repository"
	"leasewell_backend/platform/apperr"
	"leasewell_backend/platform/httpkit"
	"leasewell_backend/platform/logger"

	"github.com/google/uuid"
)

// ProfileFinder resolves user profiles for tenant lookup by email.
type ProfileFinder interface {
	GetProfileByEmail(ctx context.Context, email string) (authrepo.Profile, error)
}

// PropertyReader loads properties for ownership checks.
type PropertyReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (proprepo.Property, error)
}

// CreateInput carries the caller-supplied fields for creating a lease.
// The tenant is identified by email and must already have a tenant account.
type CreateInput struct {
	PropertyID      uuid.UUID
	TenantEmail     string
	StartDate       time.Time
	EndDate         time.Time
	MonthlyRent     float64
	SecurityDeposit *float64
	Status          string
}

// Service implements lease use cases.
type Service struct {
	repo       *repository.Repository
	profiles   ProfileFinder
	properties PropertyReader
	log        *logger.Logger
}

// New creates a new leases service.
func New(repo *repository.Repository, profiles ProfileFinder, properties PropertyReader, log *logger.Logger) *Service {
	return &Service{repo: repo, profiles: profiles, properties: properties, log: log}
}

// Create adds a lease between the calling landlord and the tenant identified
// by email. The property must belong to the landlord and the email must
// resolve to a tenant account.
func (s *Service) Create(ctx context.Context, id httpkit.Identity, input CreateInput) (repository.LeaseDetails, error) {
	if !id.IsLandlord() {
		return repository.LeaseDetails{}, apperr.Forbidden("only landlords can create leases")
	}
	if !input.EndDate.After(input.StartDate) {
		return repository.LeaseDetails{}, apperr.Validation("end date must be after start date")
	}

	property, err := s.properties.GetByID(ctx, input.PropertyID)
	if err != nil {
		return repository.LeaseDetails{}, err
	}
	if property.LandlordID != id.UserID() {
		return repository.LeaseDetails{}, apperr.NotFound("property not found")
	}

	tenant, err := s.profiles.GetProfileByEmail(ctx, input.TenantEmail)
	if err != nil {
		if apperr.GetKind(err) == apperr.KindNotFound {
			return repository.LeaseDetails{}, apperr.NotFound("tenant not found, invite them to sign up first")
		}
		return repository.LeaseDetails{}, err
	}
	if tenant.Role != httpkit.RoleTenant {
		return repository.LeaseDetails{}, apperr.Validation("user is not registered as a tenant")
	}

	status := input.Status
	if status == "" {
		status = "active"
	}

	lease, err := s.repo.Create(ctx, repository.CreateParams{
		PropertyID:      input.PropertyID,
		TenantID:        tenant.ID,
		LandlordID:      id.UserID(),
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		MonthlyRent:     input.MonthlyRent,
		SecurityDeposit: input.SecurityDeposit,
		Status:          status,
	})
	if err != nil {
		return repository.LeaseDetails{}, err
	}

	s.log.Info("lease created", "leaseId", lease.ID, "propertyId", lease.PropertyID, "tenantId", lease.TenantID)
	return lease, nil
}

// Get returns a lease the caller is a party to.
func (s *Service) Get(ctx context.Context, id httpkit.Identity, leaseID uuid.UUID) (repository.LeaseDetails, error) {
	lease, err := s.repo.GetByID(ctx, leaseID)
	if err != nil {
		return repository.LeaseDetails{}, err
	}
	if lease.LandlordID != id.UserID() && lease.TenantID != id.UserID() {
		return repository.LeaseDetails{}, apperr.NotFound("lease not found")
	}
	return lease, nil
}

// List returns leases scoped to the caller's role.
func (s *Service) List(ctx context.Context, id httpkit.Identity) ([]repository.LeaseDetails, error) {
	if id.IsLandlord() {
		return s.repo.ListByLandlord(ctx, id.UserID())
	}
	return s.repo.ListByTenant(ctx, id.UserID())
}

// Update applies partial changes to a lease owned by the calling landlord.
func (s *Service) Update(ctx context.Context, id httpkit.Identity, leaseID uuid.UUID, params repository.UpdateParams) (repository.LeaseDetails, error) {
	if !id.IsLandlord() {
		return repository.LeaseDetails{}, apperr.Forbidden("only landlords can update leases")
	}
	if params.StartDate != nil && params.EndDate != nil && !params.EndDate.After(*params.StartDate) {
		return repository.LeaseDetails{}, apperr.Validation("end date must be after start date")
	}
	return s.repo.Update(ctx, leaseID, id.UserID(), params)
}

// Delete removes a lease owned by the calling landlord.
func (s *Service) Delete(ctx context.Context, id httpkit.Identity, leaseID uuid.UUID) error {
	if !id.IsLandlord() {
		return apperr.Forbidden("only landlords can delete leases")
	}
	return s.repo.Delete(ctx, leaseID, id.UserID())
}
