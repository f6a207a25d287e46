// Package handler exposes HTTP endpoints for the invites module.
package handler

import (
	"net/http"
	"time"

	"leasewell_backend/internal/invites/repository"
	"leasewell_backend/internal/invites/service"
	"leasewell_backend/platform/httpkit"
	"leasewell_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InviteRequest is the request body for inviting a tenant.
type InviteRequest struct {
	PropertyID  uuid.UUID `json:"propertyId" validate:"required"`
	TenantEmail string    `json:"tenantEmail" validate:"required,email"`
	TenantName  *string   `json:"tenantName" validate:"omitempty,max=200"`
}

// AcceptRequest is the request body for redeeming an invite token.
type AcceptRequest struct {
	Token string `json:"token" validate:"required"`
}

// InviteResponse is the API representation of an invite. The token itself is
// never returned.
type InviteResponse struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"propertyId"`
	Email      string    `json:"email"`
	FullName   *string   `json:"fullName,omitempty"`
	Status     string    `json:"status"`
	ExpiresAt  time.Time `json:"expiresAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toResponse(i repository.Invite) InviteResponse {
	return InviteResponse{
		ID:         i.ID,
		PropertyID: i.PropertyID,
		Email:      i.Email,
		FullName:   i.FullName,
		Status:     i.Status,
		ExpiresAt:  i.ExpiresAt,
		CreatedAt:  i.CreatedAt,
	}
}

// Handler handles HTTP requests for tenant invites.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new invites handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers invite routes on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Invite)
	rg.GET("", h.List)
	rg.POST("/accept", h.Accept)
	rg.POST("/:id/revoke", h.Revoke)
}

func (h *Handler) Invite(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	invite, err := h.svc.Invite(c.Request.Context(), id, service.InviteInput{
		PropertyID:  req.PropertyID,
		TenantEmail: req.TenantEmail,
		TenantName:  req.TenantName,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, toResponse(invite))
}

func (h *Handler) List(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	items, err := h.svc.List(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]InviteResponse, 0, len(items))
	for _, i := range items {
		out = append(out, toResponse(i))
	}
	httpkit.OK(c, out)
}

func (h *Handler) Accept(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req AcceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	invite, err := h.svc.Accept(c.Request.Context(), id, req.Token)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(invite))
}

func (h *Handler) Revoke(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	inviteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid invite id", nil)
		return
	}

	if err := h.svc.Revoke(c.Request.Context(), id, inviteID); httpkit.HandleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}
