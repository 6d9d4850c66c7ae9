package handler

import (
	"github.com/bitfantasy/joinery/internal/joinery/service"
	"github.com/gin-gonic/gin"
)

// QuoteProjectHandler handles quote, project, schedule and installer
// assignment endpoints.
type QuoteProjectHandler struct {
	svc       *service.QuoteProjectService
	exportSvc *service.QuoteExportService
}

func NewQuoteProjectHandler(svc *service.QuoteProjectService, exportSvc *service.QuoteExportService) *QuoteProjectHandler {
	return &QuoteProjectHandler{svc: svc, exportSvc: exportSvc}
}

// ListQuotes GET /api/v1/quotes
func (h *QuoteProjectHandler) ListQuotes(c *gin.Context) {
	quotes, err := h.svc.ListQuotes(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"items": quotes})
}

// ListProjects GET /api/v1/projects
func (h *QuoteProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.svc.ListProjects(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"items": projects})
}

// Schedule GET /api/v1/schedule
func (h *QuoteProjectHandler) Schedule(c *gin.Context) {
	projects, err := h.svc.Schedule(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"items": projects})
}

// Get GET /api/v1/quote-projects/:id
func (h *QuoteProjectHandler) Get(c *gin.Context) {
	qp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, qp)
}

// Create POST /api/v1/quote-projects
func (h *QuoteProjectHandler) Create(c *gin.Context) {
	var req service.CreateQuoteProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	qp, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, qp)
}

// Update PUT /api/v1/quote-projects/:id
func (h *QuoteProjectHandler) Update(c *gin.Context) {
	var req service.UpdateQuoteProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	qp, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, qp)
}

// Delete DELETE /api/v1/quote-projects/:id
func (h *QuoteProjectHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

// ListInstallers GET /api/v1/quote-projects/:id/installers
func (h *QuoteProjectHandler) ListInstallers(c *gin.Context) {
	rows, err := h.svc.ListInstallers(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"items": rows})
}

// AssignInstaller POST /api/v1/quote-projects/:id/installers
func (h *QuoteProjectHandler) AssignInstaller(c *gin.Context) {
	var req struct {
		InstallerID string `json:"installer_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.InstallerID == "" {
		BadRequest(c, "installer_id is required")
		return
	}
	row, err := h.svc.AssignInstaller(c.Request.Context(), c.Param("id"), req.InstallerID)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, row)
}

// UnassignInstaller DELETE /api/v1/quote-projects/:id/installers/:installerId
func (h *QuoteProjectHandler) UnassignInstaller(c *gin.Context) {
	if err := h.svc.UnassignInstaller(c.Request.Context(), c.Param("id"), c.Param("installerId")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

// Export GET /api/v1/quotes/:id/export
func (h *QuoteProjectHandler) Export(c *gin.Context) {
	f, filename, err := h.exportSvc.Export(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}
