package handler

import (
	"errors"
	"strconv"

	"github.com/bitfantasy/joinery/internal/joinery/repository"
	"github.com/bitfantasy/joinery/internal/joinery/service"
	"github.com/bitfantasy/joinery/internal/joinery/store"
	"github.com/bitfantasy/joinery/internal/joinery/validation"
	"github.com/gin-gonic/gin"
)

// Handlers is the HTTP handler collection
type Handlers struct {
	Customer        *CustomerHandler
	Supplier        *SupplierHandler
	Hardware        *HardwareHandler
	Material        *MaterialHandler
	TemplateCabinet *TemplateCabinetHandler
	QuoteProject    *QuoteProjectHandler
	JoineryItem     *JoineryItemHandler
	Cabinet         *CabinetHandler
	Task            *TaskHandler
	Installer       *InstallerHandler
	Setting         *SettingHandler
	Document        *DocumentHandler
	SSE             *SSEHandler
}

// NewHandlers creates the handler collection
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Customer:        NewCustomerHandler(svc.Customer),
		Supplier:        NewSupplierHandler(svc.Supplier),
		Hardware:        NewHardwareHandler(svc.Hardware, svc.CatalogImport),
		Material:        NewMaterialHandler(svc.Material, svc.CatalogImport),
		TemplateCabinet: NewTemplateCabinetHandler(svc.TemplateCabinet),
		QuoteProject:    NewQuoteProjectHandler(svc.QuoteProject, svc.QuoteExport),
		JoineryItem:     NewJoineryItemHandler(svc.JoineryItem),
		Cabinet:         NewCabinetHandler(svc.Cabinet),
		Task:            NewTaskHandler(svc.Task),
		Installer:       NewInstallerHandler(svc.Installer),
		Setting:         NewSettingHandler(svc.Setting),
		Document:        NewDocumentHandler(svc.Document),
		SSE:             NewSSEHandler(),
	}
}

// Response is the common response envelope
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success responds 200 with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created responds 201 with data
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error responds with an application code whose leading digits are the
// HTTP status.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest responds 400
func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

// ValidationFailed responds 400 with the field error map
func ValidationFailed(c *gin.Context, fields validation.Errors) {
	c.JSON(400, Response{
		Code:    40000,
		Message: "Validation failed",
		Data:    gin.H{"errors": fields},
	})
}

// NotFound responds 404
func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

// Conflict responds 409
func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

// Unavailable responds 503
func Unavailable(c *gin.Context, message string) {
	Error(c, 50300, message)
}

// InternalError responds 500
func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// HandleError maps service errors onto the envelope: validation failures
// to 400 with the field map, missing records to 404, business conflicts
// to 409 and a degraded store to 503.
func HandleError(c *gin.Context, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		ValidationFailed(c, verr.Fields)
		return
	}
	if errors.Is(err, repository.ErrNotFound) {
		NotFound(c, "Record not found")
		return
	}
	var cerr *service.ConflictError
	if errors.As(err, &cerr) {
		Conflict(c, cerr.Message)
		return
	}
	if errors.Is(err, store.ErrUnavailable) {
		Unavailable(c, "Data store is not configured")
		return
	}
	InternalError(c, err.Error())
}

// GetUserID reads the request user from context, set by middleware
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// GetPagination reads page/page_size query params with sane bounds
func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}
