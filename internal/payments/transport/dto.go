// Package transport defines request and response DTOs for the payments module.
package transport

import (
	"time"

	"leasewell_backend/internal/payments/repository"

	"github.com/google/uuid"
)

// CreateIntentRequest is the request body for starting a card payment.
type CreateIntentRequest struct {
	LeaseID uuid.UUID `json:"leaseId" validate:"required"`
}

// RecordOfflineRequest is the request body for recording an offline payment.
type RecordOfflineRequest struct {
	LeaseID       uuid.UUID `json:"leaseId" validate:"required"`
	Amount        float64   `json:"amount" validate:"required,gt=0"`
	PaymentMethod string    `json:"paymentMethod" validate:"required,oneof=cash check transfer"`
	Notes         *string   `json:"notes" validate:"omitempty,max=1000"`
}

// IntentResponse returns the Stripe client secret and the pending payment.
type IntentResponse struct {
	ClientSecret string          `json:"clientSecret"`
	Payment      PaymentResponse `json:"payment"`
}

// PaymentResponse is the API representation of a payment.
type PaymentResponse struct {
	ID            uuid.UUID  `json:"id"`
	LeaseID       uuid.UUID  `json:"leaseId"`
	TenantID      uuid.UUID  `json:"tenantId"`
	LandlordID    uuid.UUID  `json:"landlordId"`
	Amount        float64    `json:"amount"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"paymentMethod"`
	Notes         *string    `json:"notes,omitempty"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ToPaymentResponse converts a repository model to its API representation.
func ToPaymentResponse(p repository.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		LeaseID:       p.LeaseID,
		TenantID:      p.TenantID,
		LandlordID:    p.LandlordID,
		Amount:        p.Amount,
		Status:        p.Status,
		PaymentMethod: p.PaymentMethod,
		Notes:         p.Notes,
		PaidAt:        p.PaidAt,
		CreatedAt:     p.CreatedAt,
	}
}

// ToPaymentResponses converts a slice of repository models.
func ToPaymentResponses(items []repository.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(items))
	for _, p := range items {
		out = append(out, ToPaymentResponse(p))
	}
	return out
}
