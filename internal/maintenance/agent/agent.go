// Package agent implements the contractor shopping pipeline: it looks up
// nearby contractors for a maintenance request, generates an outreach message
// for each one, collects quotes, and stores them for the landlord to review.
package agent

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Contractor is a candidate found by a Directory lookup.
type Contractor struct {
	PlaceID     string
	Name        string
	Address     string
	Phone       *string
	Email       *string
	Rating      *float64
	ReviewCount int
}

// Request carries the maintenance request fields the pipeline needs.
type Request struct {
	ID              uuid.UUID
	LandlordID      uuid.UUID
	Title           string
	Description     string
	Category        string
	Priority        string
	PropertyAddress string
	PropertyCity    string
	PropertyState   string
	PropertyZipCode string
	PropertyUnit    *string
}

// FullAddress formats the property location for directory searches.
func (r Request) FullAddress() string {
	s := r.PropertyAddress
	if r.PropertyCity != "" {
		s += ", " + r.PropertyCity
	}
	if r.PropertyState != "" {
		s += ", " + r.PropertyState
	}
	if r.PropertyZipCode != "" {
		s += " " + r.PropertyZipCode
	}
	return s
}

// OutreachAddress formats the property location for outreach messages,
// including the unit number when present.
func (r Request) OutreachAddress() string {
	s := r.PropertyAddress
	if r.PropertyUnit != nil && *r.PropertyUnit != "" {
		s += ", Unit " + *r.PropertyUnit
	}
	if r.PropertyCity != "" {
		s += ", " + r.PropertyCity
	}
	if r.PropertyState != "" {
		s += ", " + r.PropertyState
	}
	return s
}

// TranscriptEntry is one message in the outreach conversation with a
// contractor. Role is "sent" for outgoing messages and "received" for replies.
type TranscriptEntry struct {
	Role      string    `json:"role"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Quote is a collected contractor quote ready for persistence.
type Quote struct {
	ContractorName        string
	ContractorPhone       *string
	ContractorEmail       *string
	ContractorAddress     string
	ContractorRating      *float64
	ContractorReviewCount int
	Amount                float64
	Notes                 string
	Availability          string
	Transcript            []TranscriptEntry
}

// Directory finds contractor candidates for a maintenance category near the
// request's property.
type Directory interface {
	FindContractors(ctx context.Context, req Request) ([]Contractor, error)
}

// MessageGenerator produces the outreach message sent to a contractor.
type MessageGenerator interface {
	GenerateOutreach(ctx context.Context, req Request, contractor Contractor) (string, error)
}

// QuoteCollector obtains a quote from a contractor given the outreach message.
type QuoteCollector interface {
	CollectQuote(ctx context.Context, req Request, contractor Contractor, outreach string) (Quote, error)
}

// RequestStore records agent status transitions on maintenance requests.
type RequestStore interface {
	SetAgentStatus(ctx context.Context, requestID uuid.UUID, status string) error
}

// QuoteWriter persists collected quotes.
type QuoteWriter interface {
	SaveQuote(ctx context.Context, requestID uuid.UUID, quote Quote) error
}

// Notifier delivers in-app notifications about pipeline progress.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message string, metadata map[string]any) error
}
