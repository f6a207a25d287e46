// Package handler exposes HTTP endpoints for the documents module.
package handler

import (
	"net/http"
	"time"

	"leasewell_backend/internal/documents/repository"
	"leasewell_backend/internal/documents/service"
	"leasewell_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DocumentResponse is the API representation of a document.
type DocumentResponse struct {
	ID          uuid.UUID  `json:"id"`
	PropertyID  *uuid.UUID `json:"propertyId,omitempty"`
	LeaseID     *uuid.UUID `json:"leaseId,omitempty"`
	FileName    string     `json:"fileName"`
	ContentType string     `json:"contentType"`
	SizeBytes   int64      `json:"sizeBytes"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func toResponse(d repository.Document) DocumentResponse {
	return DocumentResponse{
		ID:          d.ID,
		PropertyID:  d.PropertyID,
		LeaseID:     d.LeaseID,
		FileName:    d.FileName,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		CreatedAt:   d.CreatedAt,
	}
}

// Handler handles HTTP requests for documents.
type Handler struct {
	svc *service.Service
}

// New creates a new documents handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers document routes on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Upload)
	rg.GET("", h.List)
	rg.GET("/:id/download", h.DownloadURL)
	rg.DELETE("/:id", h.Delete)
}

func (h *Handler) Upload(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "file is required", nil)
		return
	}

	input := service.UploadInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		SizeBytes:   fileHeader.Size,
	}

	if raw := c.PostForm("propertyId"); raw != "" {
		propertyID, err := uuid.Parse(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid property id", nil)
			return
		}
		input.PropertyID = &propertyID
	}
	if raw := c.PostForm("leaseId"); raw != "" {
		leaseID, err := uuid.Parse(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid lease id", nil)
			return
		}
		input.LeaseID = &leaseID
	}

	file, err := fileHeader.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "unreadable file", nil)
		return
	}
	defer file.Close()
	input.Content = file

	doc, err := h.svc.Upload(c.Request.Context(), id, input)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, toResponse(doc))
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

	out := make([]DocumentResponse, 0, len(items))
	for _, d := range items {
		out = append(out, toResponse(d))
	}
	httpkit.OK(c, out)
}

func (h *Handler) DownloadURL(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid document id", nil)
		return
	}

	downloadURL, err := h.svc.DownloadURL(c.Request.Context(), id, documentID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"url": downloadURL})
}

func (h *Handler) Delete(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid document id", nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, documentID); httpkit.HandleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}
