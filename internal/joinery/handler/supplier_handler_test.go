package handler

import (
	"strings"
	"testing"

	"github.com/bitfantasy/joinery/internal/config"
	"github.com/bitfantasy/joinery/internal/joinery/cache"
	"github.com/bitfantasy/joinery/internal/joinery/repository"
	"github.com/bitfantasy/joinery/internal/joinery/service"
	"github.com/bitfantasy/joinery/internal/joinery/store"
	"github.com/bitfantasy/joinery/internal/joinery/testutil"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupSupplierTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(store.FromDB(db))
	services := service.NewServices(repos, cache.NewMemoryStore(), &config.Config{})
	h := NewHandlers(services)

	r := testutil.SetupRouter()
	r.GET("/api/v1/suppliers", h.Supplier.List)
	r.POST("/api/v1/suppliers", h.Supplier.Create)
	r.GET("/api/v1/suppliers/:id", h.Supplier.Get)
	r.PUT("/api/v1/suppliers/:id", h.Supplier.Update)
	r.DELETE("/api/v1/suppliers/:id", h.Supplier.Delete)
	r.POST("/api/v1/hardware", h.Hardware.Create)

	return r, db
}

func TestSupplierCreateAndGet(t *testing.T) {
	r, _ := setupSupplierTest(t)

	w := testutil.DoRequest(r, "POST", "/api/v1/suppliers", gin.H{
		"name":  "Blum Distributors",
		"phone": "02 9555 0000",
	})
	if w.Code != 201 {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w = testutil.DoRequest(r, "GET", "/api/v1/suppliers/"+id, nil)
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["name"] != "Blum Distributors" {
		t.Errorf("Unexpected supplier name: %v", data["name"])
	}
}

func TestSupplierCreateValidation(t *testing.T) {
	r, _ := setupSupplierTest(t)

	w := testutil.DoRequest(r, "POST", "/api/v1/suppliers", gin.H{"name": ""})
	if w.Code != 400 {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
	errs := testutil.ParseResponse(w)["data"].(map[string]interface{})["errors"].(map[string]interface{})
	if errs["name"] != "Name is required" {
		t.Errorf("Unexpected name error: %v", errs["name"])
	}
}

func TestSupplierDeleteReferencedConflict(t *testing.T) {
	r, _ := setupSupplierTest(t)

	w := testutil.DoRequest(r, "POST", "/api/v1/suppliers", gin.H{"name": "Hafele"})
	if w.Code != 201 {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	supplierID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w = testutil.DoRequest(r, "POST", "/api/v1/hardware", gin.H{
		"name":          "Soft close hinge",
		"supplier_id":   supplierID,
		"cost_per_unit": 4.5,
	})
	if w.Code != 201 {
		t.Fatalf("Expected 201 creating hardware, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(r, "DELETE", "/api/v1/suppliers/"+supplierID, nil)
	if w.Code != 409 {
		t.Fatalf("Expected 409, got %d: %s", w.Code, w.Body.String())
	}
	msg := testutil.ParseResponse(w)["message"].(string)
	if !strings.Contains(msg, "being used in materials or hardware") {
		t.Errorf("Unexpected conflict message: %q", msg)
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/suppliers/"+supplierID, nil)
	if w.Code != 200 {
		t.Fatalf("Expected supplier to survive rejected delete, got %d: %s", w.Code, w.Body.String())
	}
}
