package profiles

import (
	"net/http"

	"leasewell_backend/platform/httpkit"
	"leasewell_backend/platform/phone"
	"leasewell_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// UpdateProfileRequest is the request body for updating the caller's profile.
type UpdateProfileRequest struct {
	FullName  *string `json:"fullName" validate:"omitempty,min=1,max=200"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url,max=2000"`
}

// Handler handles HTTP requests for profiles.
type Handler struct {
	repo *Repository
	val  *validator.Validator
}

// NewHandler creates a new profiles handler.
func NewHandler(repo *Repository, val *validator.Validator) *Handler {
	return &Handler{repo: repo, val: val}
}

func (h *Handler) Get(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	profile, err := h.repo.Get(c.Request.Context(), id.UserID())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, profile)
}

func (h *Handler) Update(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	if req.Phone != nil {
		normalized := phone.NormalizeE164(*req.Phone)
		req.Phone = &normalized
	}

	profile, err := h.repo.Update(c.Request.Context(), id.UserID(), UpdateParams{
		FullName:  req.FullName,
		Phone:     req.Phone,
		AvatarURL: req.AvatarURL,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, profile)
}
