package handler

import (
	"github.com/bitfantasy/joinery/internal/joinery/service"
	"github.com/gin-gonic/gin"
)

// JoineryItemHandler handles joinery item and specialized item endpoints
type JoineryItemHandler struct {
	svc *service.JoineryItemService
}

func NewJoineryItemHandler(svc *service.JoineryItemService) *JoineryItemHandler {
	return &JoineryItemHandler{svc: svc}
}

// ListByQuoteProject GET /api/v1/quote-projects/:id/items
func (h *JoineryItemHandler) ListByQuoteProject(c *gin.Context) {
	items, err := h.svc.ListByQuoteProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"items": items})
}

// Create POST /api/v1/quote-projects/:id/items
func (h *JoineryItemHandler) Create(c *gin.Context) {
	var req service.CreateJoineryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.svc.Create(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, item)
}

// Get GET /api/v1/items/:id
func (h *JoineryItemHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, item)
}

// Update PUT /api/v1/items/:id
func (h *JoineryItemHandler) Update(c *gin.Context) {
	var req service.UpdateJoineryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, item)
}

// Delete DELETE /api/v1/items/:id
func (h *JoineryItemHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

// ListSpecialized GET /api/v1/items/:id/specialized-items
func (h *JoineryItemHandler) ListSpecialized(c *gin.Context) {
	rows, err := h.svc.ListSpecialized(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"items": rows})
}

// CreateSpecialized POST /api/v1/items/:id/specialized-items
func (h *JoineryItemHandler) CreateSpecialized(c *gin.Context) {
	var req service.CreateSpecializedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	row, err := h.svc.CreateSpecialized(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, row)
}

// DeleteSpecialized DELETE /api/v1/specialized-items/:id
func (h *JoineryItemHandler) DeleteSpecialized(c *gin.Context) {
	if err := h.svc.DeleteSpecialized(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}
