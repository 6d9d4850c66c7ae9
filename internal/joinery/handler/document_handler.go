package handler

import (
	"io"

	"github.com/bitfantasy/joinery/internal/joinery/service"
	"github.com/gin-gonic/gin"
)

// DocumentHandler handles project document endpoints
type DocumentHandler struct {
	svc *service.DocumentService
}

func NewDocumentHandler(svc *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// List GET /api/v1/quote-projects/:id/documents
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.svc.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"items": docs})
}

// Upload POST /api/v1/quote-projects/:id/documents
func (h *DocumentHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		BadRequest(c, "Upload a file under the \"file\" field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	doc, err := h.svc.Upload(c.Request.Context(), c.Param("id"), GetUserID(c), header.Filename, contentType, header.Size, file)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, doc)
}

// Download GET /api/v1/documents/:id
func (h *DocumentHandler) Download(c *gin.Context) {
	doc, stream, err := h.svc.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", doc.ContentType)
	c.Header("Content-Disposition", "attachment; filename=\""+doc.FileName+"\"")
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Headers are gone; nothing sensible left to send.
		return
	}
}

// Delete DELETE /api/v1/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}
