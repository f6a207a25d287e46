// Package transport defines request and response DTOs for the leases module.
package transport

import (
	"time"

	"leasewell_backend/internal/leases/repository"

	"github.com/google/uuid"
)

// CreateLeaseRequest is the request body for creating a lease.
// Dates use the YYYY-MM-DD format.
type CreateLeaseRequest struct {
	PropertyID      uuid.UUID `json:"propertyId" validate:"required"`
	TenantEmail     string    `json:"tenantEmail" validate:"required,email"`
	StartDate       string    `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate         string    `json:"endDate" validate:"required,datetime=2006-01-02"`
	MonthlyRent     float64   `json:"monthlyRent" validate:"required,gt=0"`
	SecurityDeposit *float64  `json:"securityDeposit" validate:"omitempty,gte=0"`
	Status          string    `json:"status" validate:"omitempty,oneof=active pending expired terminated"`
}

// UpdateLeaseRequest is the request body for updating a lease.
type UpdateLeaseRequest struct {
	StartDate       *string  `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate         *string  `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	MonthlyRent     *float64 `json:"monthlyRent" validate:"omitempty,gt=0"`
	SecurityDeposit *float64 `json:"securityDeposit" validate:"omitempty,gte=0"`
	Status          *string  `json:"status" validate:"omitempty,oneof=active pending expired terminated"`
}

// LeaseResponse is the API representation of a lease with its joined details.
type LeaseResponse struct {
	ID              uuid.UUID `json:"id"`
	PropertyID      uuid.UUID `json:"propertyId"`
	TenantID        uuid.UUID `json:"tenantId"`
	LandlordID      uuid.UUID `json:"landlordId"`
	StartDate       string    `json:"startDate"`
	EndDate         string    `json:"endDate"`
	MonthlyRent     float64   `json:"monthlyRent"`
	SecurityDeposit *float64  `json:"securityDeposit,omitempty"`
	Status          string    `json:"status"`
	PropertyAddress string    `json:"propertyAddress"`
	PropertyCity    string    `json:"propertyCity"`
	TenantName      string    `json:"tenantName"`
	TenantEmail     string    `json:"tenantEmail"`
	TenantPhone     *string   `json:"tenantPhone,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

const dateLayout = "2006-01-02"

// ToLeaseResponse converts a repository model to its API representation.
func ToLeaseResponse(l repository.LeaseDetails) LeaseResponse {
	return LeaseResponse{
		ID:              l.ID,
		PropertyID:      l.PropertyID,
		TenantID:        l.TenantID,
		LandlordID:      l.LandlordID,
		StartDate:       l.StartDate.Format(dateLayout),
		EndDate:         l.EndDate.Format(dateLayout),
		MonthlyRent:     l.MonthlyRent,
		SecurityDeposit: l.SecurityDeposit,
		Status:          l.Status,
		PropertyAddress: l.PropertyAddress,
		PropertyCity:    l.PropertyCity,
		TenantName:      l.TenantName,
		TenantEmail:     l.TenantEmail,
		TenantPhone:     l.TenantPhone,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

// ToLeaseResponses converts a slice of repository models.
func ToLeaseResponses(items []repository.LeaseDetails) []LeaseResponse {
	out := make([]LeaseResponse, 0, len(items))
	for _, l := range items {
		out = append(out, ToLeaseResponse(l))
	}
	return out
}
