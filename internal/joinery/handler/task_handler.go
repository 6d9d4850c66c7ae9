package handler

import (
	"github.com/bitfantasy/joinery/internal/joinery/service"
	"github.com/gin-gonic/gin"
)

// TaskHandler handles project task endpoints
type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// View GET /api/v1/tasks
func (h *TaskHandler) View(c *gin.Context) {
	groups, err := h.svc.View(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"items": groups})
}

// ListByProject GET /api/v1/quote-projects/:id/tasks
func (h *TaskHandler) ListByProject(c *gin.Context) {
	tasks, err := h.svc.ListByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"items": tasks})
}

// Create POST /api/v1/quote-projects/:id/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req service.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	task, err := h.svc.Create(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, task)
}

// Update PUT /api/v1/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	var req service.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	task, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, task)
}

// Flag PUT /api/v1/tasks/:id/flag
func (h *TaskHandler) Flag(c *gin.Context) {
	var req struct {
		IsFlagged *bool `json:"is_flagged"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.IsFlagged == nil {
		BadRequest(c, "is_flagged is required")
		return
	}
	task, err := h.svc.SetFlagged(c.Request.Context(), c.Param("id"), *req.IsFlagged)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, task)
}

// Delete DELETE /api/v1/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}
