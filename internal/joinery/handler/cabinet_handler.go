package handler

import (
	"github.com/bitfantasy/joinery/internal/joinery/service"
	"github.com/gin-gonic/gin"
)

// CabinetHandler handles cabinet instance endpoints
type CabinetHandler struct {
	svc *service.CabinetService
}

func NewCabinetHandler(svc *service.CabinetService) *CabinetHandler {
	return &CabinetHandler{svc: svc}
}

// ListByItem GET /api/v1/items/:id/cabinets
func (h *CabinetHandler) ListByItem(c *gin.Context) {
	cabinets, err := h.svc.ListByItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"items": cabinets})
}

// Create POST /api/v1/items/:id/cabinets
func (h *CabinetHandler) Create(c *gin.Context) {
	var req service.CreateCabinetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	cab, err := h.svc.Create(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, cab)
}

// Update PUT /api/v1/cabinets/:id
func (h *CabinetHandler) Update(c *gin.Context) {
	var req service.UpdateCabinetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	cab, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, cab)
}

// Delete DELETE /api/v1/cabinets/:id
func (h *CabinetHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}
