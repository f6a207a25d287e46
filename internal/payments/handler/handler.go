// Package handler exposes HTTP endpoints for the payments module.
package handler

import (
	"io"
	"net/http"

	"leasewell_backend/internal/payments/service"
	"leasewell_backend/internal/payments/transport"
	"leasewell_backend/platform/httpkit"
	"leasewell_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Webhook payloads are small; cap reads to guard against oversized bodies.
const maxWebhookBody = 64 << 10

// Handler handles HTTP requests for payments.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new payments handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the protected payment routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/intent", h.CreateIntent)
	rg.POST("/offline", h.RecordOffline)
	rg.GET("", h.List)
}

func (h *Handler) CreateIntent(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	clientSecret, payment, err := h.svc.CreateIntent(c.Request.Context(), id, req.LeaseID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, transport.IntentResponse{
		ClientSecret: clientSecret,
		Payment:      transport.ToPaymentResponse(payment),
	})
}

func (h *Handler) RecordOffline(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.RecordOfflineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	payment, err := h.svc.RecordOffline(c.Request.Context(), id, service.RecordOfflineInput{
		LeaseID:       req.LeaseID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, transport.ToPaymentResponse(payment))
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

	httpkit.OK(c, transport.ToPaymentResponses(items))
}

// Webhook receives Stripe events. It is unauthenticated; the signature
// header is the only trust anchor.
func (h *Handler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "unreadable payload", nil)
		return
	}

	if err := h.svc.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"received": true})
}
