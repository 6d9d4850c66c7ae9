package handler

import (
	"github.com/bitfantasy/joinery/internal/joinery/service"
	"github.com/gin-gonic/gin"
)

// SettingHandler handles settings endpoints
type SettingHandler struct {
	svc *service.SettingService
}

func NewSettingHandler(svc *service.SettingService) *SettingHandler {
	return &SettingHandler{svc: svc}
}

// List GET /api/v1/settings
func (h *SettingHandler) List(c *gin.Context) {
	settings, err := h.svc.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"items": settings})
}

// Get GET /api/v1/settings/:key
func (h *SettingHandler) Get(c *gin.Context) {
	setting, err := h.svc.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, setting)
}

// Put PUT /api/v1/settings
// Body is a flat key/value object; every pair is upserted.
func (h *SettingHandler) Put(c *gin.Context) {
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if len(values) == 0 {
		BadRequest(c, "No settings provided")
		return
	}
	saved, err := h.svc.SetAll(c.Request.Context(), values)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"items": saved})
}
