// Package transport defines request and response DTOs for the maintenance module.
package transport

import (
	"time"

	"leasewell_backend/internal/maintenance/repository"

	"github.com/google/uuid"
)

// CreateRequestRequest is the request body for filing a maintenance request.
type CreateRequestRequest struct {
	PropertyID  uuid.UUID `json:"propertyId" validate:"required"`
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"required,max=5000"`
	Category    string    `json:"category" validate:"required,oneof=plumbing electrical hvac appliance security exterior general"`
	Priority    string    `json:"priority" validate:"required,oneof=low medium high emergency"`
}

// UpdateRequestRequest is the request body for updating a maintenance request.
type UpdateRequestRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,min=1,max=5000"`
	Category    *string `json:"category" validate:"omitempty,oneof=plumbing electrical hvac appliance security exterior general"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high emergency"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
}

// RequestResponse is the API representation of a maintenance request.
type RequestResponse struct {
	ID               uuid.UUID  `json:"id"`
	PropertyID       uuid.UUID  `json:"propertyId"`
	TenantID         uuid.UUID  `json:"tenantId"`
	LandlordID       uuid.UUID  `json:"landlordId"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Category         string     `json:"category"`
	Priority         string     `json:"priority"`
	Status           string     `json:"status"`
	AgentStatus      string     `json:"agentStatus"`
	AgentStartedAt   *time.Time `json:"agentStartedAt,omitempty"`
	AgentCompletedAt *time.Time `json:"agentCompletedAt,omitempty"`
	PropertyAddress  string     `json:"propertyAddress"`
	PropertyCity     string     `json:"propertyCity"`
	TenantName       string     `json:"tenantName"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// DeployResponse acknowledges that the shopping agent was started.
type DeployResponse struct {
	MaintenanceRequestID uuid.UUID `json:"maintenanceRequestId"`
	AgentStatus          string    `json:"agentStatus"`
}

// ToRequestResponse converts a repository model to its API representation.
func ToRequestResponse(m repository.RequestDetails) RequestResponse {
	return RequestResponse{
		ID:               m.ID,
		PropertyID:       m.PropertyID,
		TenantID:         m.TenantID,
		LandlordID:       m.LandlordID,
		Title:            m.Title,
		Description:      m.Description,
		Category:         m.Category,
		Priority:         m.Priority,
		Status:           m.Status,
		AgentStatus:      m.AgentStatus,
		AgentStartedAt:   m.AgentStartedAt,
		AgentCompletedAt: m.AgentCompletedAt,
		PropertyAddress:  m.PropertyAddress,
		PropertyCity:     m.PropertyCity,
		TenantName:       m.TenantName,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ToRequestResponses converts a slice of repository models.
func ToRequestResponses(items []repository.RequestDetails) []RequestResponse {
	out := make([]RequestResponse, 0, len(items))
	for _, m := range items {
		out = append(out, ToRequestResponse(m))
	}
	return out
}
