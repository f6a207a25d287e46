// Package service implements tenant invitation business logic.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"leasewell_backend/internal/auth/token"
	"leasewell_backend/internal/email"
	"leasewell_backend/internal/invites/repository"
	"leasewell_backend/internal/notifications"
	proprepo "leasewell_backend/internal/properties/repository"
	"leasewell_backend/platform/apperr"
	"leasewell_backend/platform/httpkit"
	"leasewell_backend/platform/logger"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const inviteTTL = 7 * 24 * time.Hour

// PropertyReader loads properties for ownership checks.
type PropertyReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (proprepo.Property, error)
}

// InviteInput carries the fields for creating an invite.
type InviteInput struct {
	PropertyID  uuid.UUID
	TenantEmail string
	TenantName  *string
}

// Service implements invite use cases.
type Service struct {
	repo         *repository.Repository
	properties   PropertyReader
	sender       *email.Sender
	notifier     *notifications.Service
	landlordName func(ctx context.Context, id uuid.UUID) (string, error)
	appBaseURL   string
	log          *logger.Logger
}

// New creates a new invites service. landlordName resolves the inviting
// landlord's display name for the email.
func New(repo *repository.Repository, properties PropertyReader, sender *email.Sender,
	notifier *notifications.Service, landlordName func(ctx context.Context, id uuid.UUID) (string, error),
	appBaseURL string, log *logger.Logger) *Service {
	return &Service{
		repo:         repo,
		properties:   properties,
		sender:       sender,
		notifier:     notifier,
		landlordName: landlordName,
		appBaseURL:   appBaseURL,
		log:          log,
	}
}

// Invite creates a pending invitation for the property and emails the tenant
// an accept link with a QR code. The raw token appears only in the email.
func (s *Service) Invite(ctx context.Context, id httpkit.Identity, input InviteInput) (repository.Invite, error) {
	if !id.IsLandlord() {
		return repository.Invite{}, apperr.Forbidden("only landlords can invite tenants")
	}

	property, err := s.properties.GetByID(ctx, input.PropertyID)
	if err != nil {
		return repository.Invite{}, err
	}
	if property.LandlordID != id.UserID() {
		return repository.Invite{}, apperr.NotFound("property not found")
	}

	rawToken, err := token.GenerateRandomToken(32)
	if err != nil {
		return repository.Invite{}, err
	}

	invite, err := s.repo.Create(ctx, repository.CreateParams{
		PropertyID: input.PropertyID,
		LandlordID: id.UserID(),
		Email:      strings.ToLower(input.TenantEmail),
		FullName:   input.TenantName,
		TokenHash:  token.HashSHA256(rawToken),
		ExpiresAt:  time.Now().Add(inviteTTL),
	})
	if err != nil {
		return repository.Invite{}, err
	}

	name, err := s.landlordName(ctx, id.UserID())
	if err != nil {
		name = "Your landlord"
	}

	acceptURL := fmt.Sprintf("%s/login?invite=%s", s.appBaseURL, rawToken)
	qrPNG, err := qrcode.Encode(acceptURL, qrcode.Medium, 256)
	if err != nil {
		return repository.Invite{}, err
	}

	propertyLabel := property.Address
	if property.UnitNumber != nil && *property.UnitNumber != "" {
		propertyLabel += ", " + *property.UnitNumber
	}

	if err := s.sender.SendInvite(ctx, invite.Email, name, propertyLabel, acceptURL, qrPNG); err != nil {
		s.log.Warn("invite email delivery failed", "inviteId", invite.ID, "error", err)
	}

	s.log.Info("tenant invited", "inviteId", invite.ID, "propertyId", invite.PropertyID)
	return invite, nil
}

// Accept redeems an invite token for the calling tenant and links them to
// the property.
func (s *Service) Accept(ctx context.Context, id httpkit.Identity, rawToken string) (repository.Invite, error) {
	if !id.IsTenant() {
		return repository.Invite{}, apperr.Forbidden("only tenants can accept invites")
	}

	invite, err := s.repo.GetByTokenHash(ctx, token.HashSHA256(rawToken))
	if err != nil {
		return repository.Invite{}, err
	}
	if invite.Status != repository.StatusPending {
		return repository.Invite{}, apperr.Conflict("invite is no longer pending")
	}
	if time.Now().After(invite.ExpiresAt) {
		return repository.Invite{}, apperr.Validation("invite has expired")
	}

	if err := s.repo.SetStatus(ctx, invite.ID, repository.StatusAccepted); err != nil {
		return repository.Invite{}, err
	}
	if err := s.repo.LinkTenant(ctx, id.UserID(), invite.PropertyID); err != nil {
		return repository.Invite{}, err
	}

	if err := s.notifier.Create(ctx, invite.LandlordID, "Invite accepted",
		fmt.Sprintf("%s accepted your invitation.", invite.Email),
		notifications.TypeInvite,
		map[string]any{"invite_id": invite.ID.String(), "property_id": invite.PropertyID.String()}); err != nil {
		s.log.Warn("invite notification failed", "inviteId", invite.ID, "error", err)
	}

	invite.Status = repository.StatusAccepted
	return invite, nil
}

// Revoke withdraws a pending invite owned by the calling landlord.
func (s *Service) Revoke(ctx context.Context, id httpkit.Identity, inviteID uuid.UUID) error {
	if !id.IsLandlord() {
		return apperr.Forbidden("only landlords can revoke invites")
	}

	if _, err := s.repo.GetByID(ctx, inviteID, id.UserID()); err != nil {
		return err
	}
	return s.repo.SetStatus(ctx, inviteID, repository.StatusRevoked)
}

// List returns the calling landlord's invites.
func (s *Service) List(ctx context.Context, id httpkit.Identity) ([]repository.Invite, error) {
	if !id.IsLandlord() {
		return nil, apperr.Forbidden("only landlords can list invites")
	}
	return s.repo.ListByLandlord(ctx, id.UserID())
}
