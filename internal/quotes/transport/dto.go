// Package transport defines response DTOs for the quotes module.
package transport

import (
	"time"

	"leasewell_backend/internal/maintenance/agent"
	"leasewell_backend/internal/quotes/repository"

	"github.com/google/uuid"
)

// TranscriptEntryResponse is one outreach conversation message.
type TranscriptEntryResponse struct {
	Role      string    `json:"role"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// QuoteResponse is the API representation of a contractor quote.
type QuoteResponse struct {
	ID                    uuid.UUID                 `json:"id"`
	MaintenanceRequestID  uuid.UUID                 `json:"maintenanceRequestId"`
	ContractorName        string                    `json:"contractorName"`
	ContractorPhone       *string                   `json:"contractorPhone,omitempty"`
	ContractorEmail       *string                   `json:"contractorEmail,omitempty"`
	ContractorAddress     string                    `json:"contractorAddress"`
	ContractorRating      *float64                  `json:"contractorRating,omitempty"`
	ContractorReviewCount int                       `json:"contractorReviewCount"`
	Amount                float64                   `json:"amount"`
	Notes                 string                    `json:"notes"`
	Availability          string                    `json:"availability"`
	Status                string                    `json:"status"`
	Transcript            []TranscriptEntryResponse `json:"transcript"`
	CreatedAt             time.Time                 `json:"createdAt"`
}

func toTranscript(entries []agent.TranscriptEntry) []TranscriptEntryResponse {
	out := make([]TranscriptEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, TranscriptEntryResponse{Role: e.Role, Message: e.Message, Timestamp: e.Timestamp})
	}
	return out
}

// ToQuoteResponse converts a repository model to its API representation.
func ToQuoteResponse(q repository.Quote) QuoteResponse {
	return QuoteResponse{
		ID:                    q.ID,
		MaintenanceRequestID:  q.MaintenanceRequestID,
		ContractorName:        q.ContractorName,
		ContractorPhone:       q.ContractorPhone,
		ContractorEmail:       q.ContractorEmail,
		ContractorAddress:     q.ContractorAddress,
		ContractorRating:      q.ContractorRating,
		ContractorReviewCount: q.ContractorReviewCount,
		Amount:                q.Amount,
		Notes:                 q.Notes,
		Availability:          q.Availability,
		Status:                q.Status,
		Transcript:            toTranscript(q.Transcript),
		CreatedAt:             q.CreatedAt,
	}
}

// ToQuoteResponses converts a slice of repository models.
func ToQuoteResponses(items []repository.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(items))
	for _, q := range items {
		out = append(out, ToQuoteResponse(q))
	}
	return out
}
