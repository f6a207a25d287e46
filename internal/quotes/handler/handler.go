// Package handler exposes HTTP endpoints for the quotes module.
package handler

import (
	"net/http"

	"leasewell_backend/internal/quotes/service"
	"leasewell_backend/internal/quotes/transport"
	"leasewell_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for contractor quotes.
type Handler struct {
	svc *service.Service
}

// New creates a new quotes handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers quote routes nested under maintenance requests.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id/quotes", h.List)
	rg.POST("/:id/quotes/:quoteId/select", h.Select)
}

func (h *Handler) List(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request id", nil)
		return
	}

	items, err := h.svc.List(c.Request.Context(), id, requestID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToQuoteResponses(items))
}

func (h *Handler) Select(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request id", nil)
		return
	}
	quoteID, err := uuid.Parse(c.Param("quoteId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid quote id", nil)
		return
	}

	quote, err := h.svc.Select(c.Request.Context(), id, requestID, quoteID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToQuoteResponse(quote))
}
