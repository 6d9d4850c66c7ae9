package handler

import (
	"github.com/bitfantasy/joinery/internal/joinery/service"
	"github.com/gin-gonic/gin"
)

// TemplateCabinetHandler handles the standard cabinet catalog endpoints
type TemplateCabinetHandler struct {
	svc *service.TemplateCabinetService
}

func NewTemplateCabinetHandler(svc *service.TemplateCabinetService) *TemplateCabinetHandler {
	return &TemplateCabinetHandler{svc: svc}
}

// List GET /api/v1/template-cabinets?category=base
func (h *TemplateCabinetHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"items": items})
}

// Get GET /api/v1/template-cabinets/:id
func (h *TemplateCabinetHandler) Get(c *gin.Context) {
	tpl, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, tpl)
}

// Create POST /api/v1/template-cabinets
func (h *TemplateCabinetHandler) Create(c *gin.Context) {
	var req service.CreateTemplateCabinetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	tpl, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, tpl)
}

// Update PUT /api/v1/template-cabinets/:id
func (h *TemplateCabinetHandler) Update(c *gin.Context) {
	var req service.UpdateTemplateCabinetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	tpl, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, tpl)
}

// Delete DELETE /api/v1/template-cabinets/:id
func (h *TemplateCabinetHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}
