package messages

import (
	"fmt"
	"net/http"

	"leasewell_backend/internal/notifications"
	"leasewell_backend/platform/httpkit"
	"leasewell_backend/platform/logger"
	"leasewell_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SendMessageRequest is the request body for sending a message.
type SendMessageRequest struct {
	PropertyID  uuid.UUID `json:"propertyId" validate:"required"`
	RecipientID uuid.UUID `json:"recipientId" validate:"required"`
	Content     string    `json:"content" validate:"required,max=5000"`
}

// Handler handles HTTP requests for messages.
type Handler struct {
	repo     *Repository
	notifier *notifications.Service
	val      *validator.Validator
	log      *logger.Logger
}

// NewHandler creates a new messages handler.
func NewHandler(repo *Repository, notifier *notifications.Service, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{repo: repo, notifier: notifier, val: val, log: log}
}

func (h *Handler) Send(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}
	if req.RecipientID == id.UserID() {
		httpkit.Error(c, http.StatusBadRequest, "cannot message yourself", nil)
		return
	}

	m, err := h.repo.Create(c.Request.Context(), req.PropertyID, id.UserID(), req.RecipientID, req.Content)
	if httpkit.HandleError(c, err) {
		return
	}

	if err := h.notifier.Create(c.Request.Context(), req.RecipientID, "New message",
		fmt.Sprintf("You have a new message about property %s.", req.PropertyID),
		notifications.TypeMessage,
		map[string]any{"message_id": m.ID.String(), "property_id": req.PropertyID.String()}); err != nil {
		h.log.Warn("message notification failed", "messageId", m.ID, "error", err)
	}

	httpkit.Created(c, m)
}

func (h *Handler) ListConversation(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	propertyID, err := uuid.Parse(c.Query("propertyId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid property id", nil)
		return
	}
	otherID, err := uuid.Parse(c.Query("withUserId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid user id", nil)
		return
	}

	items, err := h.repo.ListConversation(c.Request.Context(), propertyID, id.UserID(), otherID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, items)
}

func (h *Handler) MarkRead(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid message id", nil)
		return
	}

	if err := h.repo.MarkRead(c.Request.Context(), messageID, id.UserID()); httpkit.HandleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}
