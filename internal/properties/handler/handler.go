// Package handler exposes HTTP endpoints for the properties module.
package handler

import (
	"net/http"

	"leasewell_backend/internal/properties/repository"
	"leasewell_backend/internal/properties/service"
	"leasewell_backend/internal/properties/transport"
	"leasewell_backend/platform/httpkit"
	"leasewell_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for properties.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new properties handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers property routes on the given group.
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

	var req transport.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	p, err := h.svc.Create(c.Request.Context(), id, repository.CreateParams{
		Address:      req.Address,
		UnitNumber:   req.UnitNumber,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		PropertyType: req.PropertyType,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		SquareFeet:   req.SquareFeet,
		Description:  req.Description,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, transport.ToPropertyResponse(p))
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

	httpkit.OK(c, transport.ToPropertyResponses(items))
}

func (h *Handler) Get(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid property id", nil)
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id, propertyID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToPropertyResponse(p))
}

func (h *Handler) Update(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid property id", nil)
		return
	}

	var req transport.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	p, err := h.svc.Update(c.Request.Context(), id, propertyID, repository.UpdateParams{
		Address:      req.Address,
		UnitNumber:   req.UnitNumber,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		PropertyType: req.PropertyType,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		SquareFeet:   req.SquareFeet,
		Description:  req.Description,
		Status:       req.Status,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToPropertyResponse(p))
}

func (h *Handler) Delete(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid property id", nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, propertyID); httpkit.HandleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}
