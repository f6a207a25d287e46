// Package handler exposes HTTP endpoints for the leases module.
package handler

import (
	"net/http"
	"time"

	"leasewell_backend/internal/leases/repository"
	"leasewell_backend/internal/leases/service"
	"leasewell_backend/internal/leases/transport"
	"leasewell_backend/platform/httpkit"
	"leasewell_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Handler handles HTTP requests for leases.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new leases handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers lease routes on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.CreateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	startDate, _ := time.Parse(dateLayout, req.StartDate)
	endDate, _ := time.Parse(dateLayout, req.EndDate)

	lease, err := h.svc.Create(c.Request.Context(), id, service.CreateInput{
		PropertyID:      req.PropertyID,
		TenantEmail:     req.TenantEmail,
		StartDate:       startDate,
		EndDate:         endDate,
		MonthlyRent:     req.MonthlyRent,
		SecurityDeposit: req.SecurityDeposit,
		Status:          req.Status,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, transport.ToLeaseResponse(lease))
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

	httpkit.OK(c, transport.ToLeaseResponses(items))
}

func (h *Handler) Get(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	leaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lease id", nil)
		return
	}

	lease, err := h.svc.Get(c.Request.Context(), id, leaseID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToLeaseResponse(lease))
}

func (h *Handler) Update(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	leaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lease id", nil)
		return
	}

	var req transport.UpdateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	params := repository.UpdateParams{
		MonthlyRent:     req.MonthlyRent,
		SecurityDeposit: req.SecurityDeposit,
		Status:          req.Status,
	}
	if req.StartDate != nil {
		t, _ := time.Parse(dateLayout, *req.StartDate)
		params.StartDate = &t
	}
	if req.EndDate != nil {
		t, _ := time.Parse(dateLayout, *req.EndDate)
		params.EndDate = &t
	}

	lease, err := h.svc.Update(c.Request.Context(), id, leaseID, params)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToLeaseResponse(lease))
}

func (h *Handler) Delete(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	leaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lease id", nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, leaseID); httpkit.HandleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}
