// Package transport defines request and response DTOs for the properties module.
package transport

import (
	"time"

	"leasewell_backend/internal/properties/repository"

	"github.com/google/uuid"
)

// CreatePropertyRequest is the request body for creating a property.
type CreatePropertyRequest struct {
	Address      string   `json:"address" validate:"required,max=500"`
	UnitNumber   *string  `json:"unitNumber" validate:"omitempty,max=50"`
	City         string   `json:"city" validate:"required,max=100"`
	State        string   `json:"state" validate:"required,max=50"`
	ZipCode      string   `json:"zipCode" validate:"required,max=20"`
	PropertyType string   `json:"propertyType" validate:"omitempty,oneof=apartment house condo townhouse duplex commercial other"`
	Bedrooms     *int     `json:"bedrooms" validate:"omitempty,min=0,max=50"`
	Bathrooms    *float64 `json:"bathrooms" validate:"omitempty,min=0,max=50"`
	SquareFeet   *int     `json:"squareFeet" validate:"omitempty,min=0"`
	Description  *string  `json:"description" validate:"omitempty,max=5000"`
}

// UpdatePropertyRequest is the request body for updating a property.
// All fields are optional; omitted fields are left unchanged.
type UpdatePropertyRequest struct {
	Address      *string  `json:"address" validate:"omitempty,min=1,max=500"`
	UnitNumber   *string  `json:"unitNumber" validate:"omitempty,max=50"`
	City         *string  `json:"city" validate:"omitempty,min=1,max=100"`
	State        *string  `json:"state" validate:"omitempty,min=1,max=50"`
	ZipCode      *string  `json:"zipCode" validate:"omitempty,min=1,max=20"`
	PropertyType *string  `json:"propertyType" validate:"omitempty,oneof=apartment house condo townhouse duplex commercial other"`
	Bedrooms     *int     `json:"bedrooms" validate:"omitempty,min=0,max=50"`
	Bathrooms    *float64 `json:"bathrooms" validate:"omitempty,min=0,max=50"`
	SquareFeet   *int     `json:"squareFeet" validate:"omitempty,min=0"`
	Description  *string  `json:"description" validate:"omitempty,max=5000"`
	Status       *string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

// PropertyResponse is the API representation of a property.
type PropertyResponse struct {
	ID           uuid.UUID `json:"id"`
	LandlordID   uuid.UUID `json:"landlordId"`
	Address      string    `json:"address"`
	UnitNumber   *string   `json:"unitNumber,omitempty"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	ZipCode      string    `json:"zipCode"`
	PropertyType string    `json:"propertyType"`
	Bedrooms     *int      `json:"bedrooms,omitempty"`
	Bathrooms    *float64  `json:"bathrooms,omitempty"`
	SquareFeet   *int      `json:"squareFeet,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToPropertyResponse converts a repository model to its API representation.
func ToPropertyResponse(p repository.Property) PropertyResponse {
	return PropertyResponse{
		ID:           p.ID,
		LandlordID:   p.LandlordID,
		Address:      p.Address,
		UnitNumber:   p.UnitNumber,
		City:         p.City,
		State:        p.State,
		ZipCode:      p.ZipCode,
		PropertyType: p.PropertyType,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		SquareFeet:   p.SquareFeet,
		Description:  p.Description,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToPropertyResponses converts a slice of repository models.
func ToPropertyResponses(items []repository.Property) []PropertyResponse {
	out := make([]PropertyResponse, 0, len(items))
	for _, p := range items {
		out = append(out, ToPropertyResponse(p))
	}
	return out
}
