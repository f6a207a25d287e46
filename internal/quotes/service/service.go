// Package service implements contractor quote business logic.
package service

import (
	"context"

	mrepo "leasewell_backend/internal/maintenance/repository"
	"leasewell_backend/internal/quotes/repository"
	"leasewell_backend/platform/apperr"
	"leasewell_backend/platform/httpkit"
	"leasewell_backend/platform/logger"

	"github.com/google/uuid"
)

// RequestReader loads maintenance requests for authorization checks.
type RequestReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (mrepo.RequestDetails, error)
}

// Service implements quote use cases.
type Service struct {
	repo     *repository.Repository
	requests RequestReader
	log      *logger.Logger
}

// New creates a new quotes service.
func New(repo *repository.Repository, requests RequestReader, log *logger.Logger) *Service {
	return &Service{repo: repo, requests: requests, log: log}
}

// List returns the quotes collected for a maintenance request. The caller
// must be a party to the request.
func (s *Service) List(ctx context.Context, id httpkit.Identity, requestID uuid.UUID) ([]repository.Quote, error) {
	m, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if m.LandlordID != id.UserID() && m.TenantID != id.UserID() {
		return nil, apperr.NotFound("maintenance request not found")
	}
	return s.repo.ListByRequest(ctx, requestID)
}

// Select accepts a quote for a maintenance request. Only the request's
// landlord can select; the quote must belong to the request. Selecting the
// already accepted quote again is a no-op; other quotes are left untouched.
func (s *Service) Select(ctx context.Context, id httpkit.Identity, requestID, quoteID uuid.UUID) (repository.Quote, error) {
	if !id.IsLandlord() {
		return repository.Quote{}, apperr.Forbidden("only landlords can select quotes")
	}

	m, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return repository.Quote{}, err
	}
	if m.LandlordID != id.UserID() {
		return repository.Quote{}, apperr.NotFound("maintenance request not found")
	}

	quote, err := s.repo.GetByID(ctx, quoteID)
	if err != nil {
		return repository.Quote{}, err
	}
	if quote.MaintenanceRequestID != requestID {
		return repository.Quote{}, apperr.NotFound("quote not found")
	}
	if quote.Status == repository.StatusAccepted {
		return quote, nil
	}

	accepted, err := s.repo.Accept(ctx, quoteID)
	if err != nil {
		return repository.Quote{}, err
	}

	s.log.Info("quote selected", "maintenanceRequestId", requestID, "quoteId", quoteID, "amount", accepted.Amount)
	return accepted, nil
}
