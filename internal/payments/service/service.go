// Package service implements rent payment business logic on top of Stripe.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	authrepo "leasewell_backend/internal/auth/repository"
	lrepo "leasewell_backend/internal/leases/repository"
	"leasewell_backend/internal/notifications"
	"leasewell_backend/internal/payments/repository"
	"leasewell_backend/platform/apperr"
	"leasewell_backend/platform/httpkit"
	"leasewell_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// LeaseReader loads leases for payment authorization.
type LeaseReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (lrepo.LeaseDetails, error)
}

// ProfileReader loads profiles for the landlord's connected account.
type ProfileReader interface {
	GetProfileByID(ctx context.Context, id uuid.UUID) (authrepo.Profile, error)
}

// RecordOfflineInput carries the fields for a manually recorded payment.
type RecordOfflineInput struct {
	LeaseID       uuid.UUID
	Amount        float64
	PaymentMethod string
	Notes         *string
}

// Service implements payment use cases.
type Service struct {
	repo          *repository.Repository
	leases        LeaseReader
	profiles      ProfileReader
	notifier      *notifications.Service
	stripe        *client.API
	webhookSecret string
	log           *logger.Logger
}

// New creates a new payments service. The Stripe client may be nil when
// payments are disabled; intent creation then fails with an upstream error.
func New(repo *repository.Repository, leases LeaseReader, profiles ProfileReader,
	notifier *notifications.Service, stripeClient *client.API, webhookSecret string, log *logger.Logger) *Service {
	return &Service{
		repo:          repo,
		leases:        leases,
		profiles:      profiles,
		notifier:      notifier,
		stripe:        stripeClient,
		webhookSecret: webhookSecret,
		log:           log,
	}
}

// CreateIntent creates a Stripe payment intent for the lease's monthly rent,
// wired as a destination charge to the landlord's connected account, and
// records a pending payment. Returns the client secret for the frontend.
func (s *Service) CreateIntent(ctx context.Context, id httpkit.Identity, leaseID uuid.UUID) (string, repository.Payment, error) {
	if s.stripe == nil {
		return "", repository.Payment{}, apperr.Upstream("card payments are not configured")
	}

	lease, err := s.leases.GetByID(ctx, leaseID)
	if err != nil {
		return "", repository.Payment{}, err
	}
	if lease.TenantID != id.UserID() {
		return "", repository.Payment{}, apperr.Forbidden("only the tenant can pay this lease")
	}

	landlord, err := s.profiles.GetProfileByID(ctx, lease.LandlordID)
	if err != nil {
		return "", repository.Payment{}, err
	}
	if landlord.StripeAccountID == nil || *landlord.StripeAccountID == "" {
		return "", repository.Payment{}, apperr.Validation("landlord has not connected Stripe yet")
	}

	amountCents := int64(math.Round(lease.MonthlyRent * 100))
	if amountCents <= 0 {
		return "", repository.Payment{}, apperr.Validation("invalid rent amount")
	}

	intent, err := s.stripe.PaymentIntents.New(&stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
			Metadata: map[string]string{
				"lease_id":  lease.ID.String(),
				"tenant_id": lease.TenantID.String(),
			},
		},
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card", "us_bank_account"}),
		TransferData: &stripe.PaymentIntentTransferDataParams{
			Destination: landlord.StripeAccountID,
		},
	})
	if err != nil {
		return "", repository.Payment{}, apperr.Wrap(apperr.KindUpstream, "failed to create payment intent", err)
	}

	payment, err := s.repo.Create(ctx, repository.CreateParams{
		LeaseID:               lease.ID,
		TenantID:              lease.TenantID,
		LandlordID:            lease.LandlordID,
		Amount:                lease.MonthlyRent,
		Status:                repository.StatusPending,
		PaymentMethod:         "card",
		StripePaymentIntentID: &intent.ID,
	})
	if err != nil {
		return "", repository.Payment{}, err
	}

	s.log.PaymentEvent("intent_created", payment.ID.String(), lease.MonthlyRent)
	return intent.ClientSecret, payment, nil
}

// HandleWebhook verifies the Stripe signature and applies intent outcomes to
// the matching payment row.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		return apperr.Wrap(apperr.KindUnauthorized, "invalid webhook signature", err)
	}

	switch event.Type {
	case "payment_intent.succeeded":
		return s.applyIntentOutcome(ctx, event, repository.StatusPaid)
	case "payment_intent.payment_failed":
		return s.applyIntentOutcome(ctx, event, repository.StatusFailed)
	default:
		return nil
	}
}

func (s *Service) applyIntentOutcome(ctx context.Context, event stripe.Event, status string) error {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return apperr.Wrap(apperr.KindBadRequest, "malformed webhook payload", err)
	}

	payment, err := s.repo.SetStatusByIntent(ctx, intent.ID, status)
	if err != nil {
		// Unknown intents can arrive for other products on the same account.
		if apperr.GetKind(err) == apperr.KindNotFound {
			return nil
		}
		return err
	}

	s.log.PaymentEvent("payment_"+status, payment.ID.String(), payment.Amount)

	if status == repository.StatusPaid {
		s.notifyBoth(ctx, payment, "Payment received",
			fmt.Sprintf("A rent payment of $%.2f was completed.", payment.Amount))
	} else {
		s.notifyBoth(ctx, payment, "Payment failed",
			fmt.Sprintf("A rent payment of $%.2f failed.", payment.Amount))
	}
	return nil
}

func (s *Service) notifyBoth(ctx context.Context, payment repository.Payment, title, message string) {
	metadata := map[string]any{"payment_id": payment.ID.String(), "lease_id": payment.LeaseID.String()}
	for _, userID := range []uuid.UUID{payment.LandlordID, payment.TenantID} {
		if err := s.notifier.Create(ctx, userID, title, message, notifications.TypePayment, metadata); err != nil {
			s.log.Warn("payment notification failed", "paymentId", payment.ID, "userId", userID, "error", err)
		}
	}
}

// RecordOffline records a payment collected outside Stripe (cash, check, or
// bank transfer). Only the lease's landlord can record one.
func (s *Service) RecordOffline(ctx context.Context, id httpkit.Identity, input RecordOfflineInput) (repository.Payment, error) {
	if !id.IsLandlord() {
		return repository.Payment{}, apperr.Forbidden("only landlords can record offline payments")
	}

	lease, err := s.leases.GetByID(ctx, input.LeaseID)
	if err != nil {
		return repository.Payment{}, err
	}
	if lease.LandlordID != id.UserID() {
		return repository.Payment{}, apperr.NotFound("lease not found")
	}

	now := time.Now()
	payment, err := s.repo.Create(ctx, repository.CreateParams{
		LeaseID:       lease.ID,
		TenantID:      lease.TenantID,
		LandlordID:    lease.LandlordID,
		Amount:        input.Amount,
		Status:        repository.StatusPaid,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
		PaidAt:        &now,
	})
	if err != nil {
		return repository.Payment{}, err
	}

	s.log.PaymentEvent("offline_recorded", payment.ID.String(), payment.Amount)
	return payment, nil
}

// List returns payments scoped to the caller's role.
func (s *Service) List(ctx context.Context, id httpkit.Identity) ([]repository.Payment, error) {
	if id.IsLandlord() {
		return s.repo.ListByLandlord(ctx, id.UserID())
	}
	return s.repo.ListByTenant(ctx, id.UserID())
}
