// Package handler exposes HTTP endpoints for the maintenance module.
package handler

import (
	"net/http"

	"leasewell_backend/internal/maintenance/repository"
	"leasewell_backend/internal/maintenance/service"
	"leasewell_backend/internal/maintenance/transport"
	"leasewell_backend/platform/httpkit"
	"leasewell_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for maintenance requests.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new maintenance handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers maintenance routes on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/shop", h.Deploy)
}

func (h *Handler) Create(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	m, err := h.svc.Create(c.Request.Context(), id, service.CreateInput{
		PropertyID:  req.PropertyID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, transport.ToRequestResponse(m))
}

func (h *Handler) List(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	filters := repository.ListFilters{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}
	if raw := c.Query("propertyId"); raw != "" {
		propertyID, err := uuid.Parse(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid property id", nil)
			return
		}
		filters.PropertyID = propertyID
	}

	items, err := h.svc.List(c.Request.Context(), id, filters)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToRequestResponses(items))
}

func (h *Handler) Get(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request id", nil)
		return
	}

	m, err := h.svc.Get(c.Request.Context(), id, requestID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToRequestResponse(m))
}

func (h *Handler) Update(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request id", nil)
		return
	}

	var req transport.UpdateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	m, err := h.svc.Update(c.Request.Context(), id, requestID, repository.UpdateParams{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToRequestResponse(m))
}

func (h *Handler) Delete(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request id", nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, requestID); httpkit.HandleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}

// Deploy starts the contractor shopping agent and responds 202 while the
// pipeline runs in the background.
func (h *Handler) Deploy(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request id", nil)
		return
	}

	m, err := h.svc.Deploy(c.Request.Context(), id, requestID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Accepted(c, transport.DeployResponse{
		MaintenanceRequestID: m.ID,
		AgentStatus:          m.AgentStatus,
	})
}
