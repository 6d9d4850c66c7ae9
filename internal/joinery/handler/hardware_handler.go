package handler

import (
	"github.com/bitfantasy/joinery/internal/joinery/service"
	"github.com/gin-gonic/gin"
)

// HardwareHandler handles hardware catalog endpoints
type HardwareHandler struct {
	svc       *service.HardwareService
	importSvc *service.CatalogImportService
}

func NewHardwareHandler(svc *service.HardwareService, importSvc *service.CatalogImportService) *HardwareHandler {
	return &HardwareHandler{svc: svc, importSvc: importSvc}
}

// List GET /api/v1/hardware?supplier_id=xxx
func (h *HardwareHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), c.Query("supplier_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"items": items})
}

// Get GET /api/v1/hardware/:id
func (h *HardwareHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, item)
}

// Create POST /api/v1/hardware
func (h *HardwareHandler) Create(c *gin.Context) {
	var req service.CreateHardwareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, item)
}

// Update PUT /api/v1/hardware/:id
func (h *HardwareHandler) Update(c *gin.Context) {
	var req service.UpdateHardwareRequest
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

// Delete DELETE /api/v1/hardware/:id
func (h *HardwareHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

// Import POST /api/v1/hardware/import
func (h *HardwareHandler) Import(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		BadRequest(c, "Upload a CSV file under the \"file\" field")
		return
	}
	defer file.Close()

	result, err := h.importSvc.ImportHardware(c.Request.Context(), file)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, result)
}
