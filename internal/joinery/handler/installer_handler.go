package handler

import (
	"github.com/bitfantasy/joinery/internal/joinery/service"
	"github.com/gin-gonic/gin"
)

// InstallerHandler handles installer endpoints
type InstallerHandler struct {
	svc *service.InstallerService
}

func NewInstallerHandler(svc *service.InstallerService) *InstallerHandler {
	return &InstallerHandler{svc: svc}
}

// List GET /api/v1/installers
func (h *InstallerHandler) List(c *gin.Context) {
	installers, err := h.svc.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"items": installers})
}

// Create POST /api/v1/installers
func (h *InstallerHandler) Create(c *gin.Context) {
	var req service.CreateInstallerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	ins, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, ins)
}

// Update PUT /api/v1/installers/:id
func (h *InstallerHandler) Update(c *gin.Context) {
	var req service.UpdateInstallerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	ins, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, ins)
}

// Delete DELETE /api/v1/installers/:id
func (h *InstallerHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}
