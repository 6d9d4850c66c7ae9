package handler

import (
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

func setupCabinetTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(store.FromDB(db))
	services := service.NewServices(repos, cache.NewMemoryStore(), &config.Config{})
	h := NewHandlers(services)

	r := testutil.SetupRouter()
	r.POST("/api/v1/quote-projects/:id/items", h.JoineryItem.Create)
	r.GET("/api/v1/items/:id", h.JoineryItem.Get)
	r.DELETE("/api/v1/items/:id", h.JoineryItem.Delete)
	r.GET("/api/v1/items/:id/cabinets", h.Cabinet.ListByItem)
	r.POST("/api/v1/items/:id/cabinets", h.Cabinet.Create)
	r.PUT("/api/v1/cabinets/:id", h.Cabinet.Update)
	r.DELETE("/api/v1/cabinets/:id", h.Cabinet.Delete)
	r.POST("/api/v1/template-cabinets", h.TemplateCabinet.Create)
	r.DELETE("/api/v1/template-cabinets/:id", h.TemplateCabinet.Delete)
	r.POST("/api/v1/hardware", h.Hardware.Create)

	return r, db
}

func createTemplate(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := testutil.DoRequest(r, "POST", "/api/v1/template-cabinets", gin.H{
		"category": "base",
		"type":     "door",
		"width":    600.0,
		"height":   720.0,
		"depth":    560.0,
		"door_qty": 2,
	})
	if w.Code != 201 {
		t.Fatalf("Expected 201 creating template, got %d: %s", w.Code, w.Body.String())
	}
	return testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)
}

func TestCabinetFromTemplate(t *testing.T) {
	r, db := setupCabinetTest(t)
	testutil.SeedQuoteProject(t, db, "proj-cabinets-000000000000000001", "Kitchen", true, "draft")
	item := createItem(t, r, "proj-cabinets-000000000000000001", "Base run")
	itemID := item["id"].(string)
	templateID := createTemplate(t, r)

	w := testutil.DoRequest(r, "POST", "/api/v1/hardware", gin.H{
		"name":          "Standard hinge",
		"cost_per_unit": 3.2,
	})
	if w.Code != 201 {
		t.Fatalf("Expected 201 creating hardware, got %d: %s", w.Code, w.Body.String())
	}
	hardwareID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w = testutil.DoRequest(r, "POST", "/api/v1/items/"+itemID+"/cabinets", gin.H{
		"template_cabinet_id": templateID,
		"quantity":            3,
		"hardware": []gin.H{
			{"hardware_id": hardwareID, "quantity": 4},
		},
	})
	if w.Code != 201 {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	cabinet := testutil.ParseResponse(w)["data"].(map[string]interface{})
	cabinetID := cabinet["id"].(string)
	if cabinet["quantity"].(float64) != 3 {
		t.Errorf("Expected quantity 3, got %v", cabinet["quantity"])
	}
	lines, ok := cabinet["hardware"].([]interface{})
	if !ok || len(lines) != 1 {
		t.Fatalf("Expected one hardware line, got %v", cabinet["hardware"])
	}

	// Template in use cannot be deleted
	w = testutil.DoRequest(r, "DELETE", "/api/v1/template-cabinets/"+templateID, nil)
	if w.Code != 409 {
		t.Fatalf("Expected 409 deleting template in use, got %d: %s", w.Code, w.Body.String())
	}

	// Neither can the item while the cabinet exists
	w = testutil.DoRequest(r, "DELETE", "/api/v1/items/"+itemID, nil)
	if w.Code != 409 {
		t.Fatalf("Expected 409 deleting item with cabinets, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(r, "DELETE", "/api/v1/cabinets/"+cabinetID, nil)
	if w.Code != 200 {
		t.Fatalf("Expected 200 deleting cabinet, got %d: %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(r, "DELETE", "/api/v1/items/"+itemID, nil)
	if w.Code != 200 {
		t.Fatalf("Expected 200 deleting item after cabinets gone, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCabinetDefaultQuantity(t *testing.T) {
	r, db := setupCabinetTest(t)
	testutil.SeedQuoteProject(t, db, "proj-cab-qty-0000000000000000001", "Pantry", true, "draft")
	item := createItem(t, r, "proj-cab-qty-0000000000000000001", "Pantry run")

	w := testutil.DoRequest(r, "POST", "/api/v1/items/"+item["id"].(string)+"/cabinets", gin.H{
		"width": 600.0, "height": 720.0, "depth": 560.0,
	})
	if w.Code != 201 {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	cabinet := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if cabinet["quantity"].(float64) != 1 {
		t.Errorf("Expected omitted quantity to default to 1, got %v", cabinet["quantity"])
	}
}

func TestCabinetDimensionValidation(t *testing.T) {
	r, db := setupCabinetTest(t)
	testutil.SeedQuoteProject(t, db, "proj-cab-dims-000000000000000001", "Bathroom", true, "draft")
	item := createItem(t, r, "proj-cab-dims-000000000000000001", "Vanity run")

	w := testutil.DoRequest(r, "POST", "/api/v1/items/"+item["id"].(string)+"/cabinets", gin.H{
		"width": -10.0,
	})
	if w.Code != 400 {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
	errs := testutil.ParseResponse(w)["data"].(map[string]interface{})["errors"].(map[string]interface{})
	if _, ok := errs["width"]; !ok {
		t.Errorf("Expected a width error, got %v", errs)
	}
}

func TestCabinetHardwareLinesReplacedOnUpdate(t *testing.T) {
	r, db := setupCabinetTest(t)
	testutil.SeedQuoteProject(t, db, "proj-cab-lines-00000000000000001", "Laundry", true, "draft")
	item := createItem(t, r, "proj-cab-lines-00000000000000001", "Tall run")
	itemID := item["id"].(string)

	var hardwareIDs []string
	for _, name := range []string{"Hinge A", "Hinge B"} {
		w := testutil.DoRequest(r, "POST", "/api/v1/hardware", gin.H{"name": name, "cost_per_unit": 1.0})
		if w.Code != 201 {
			t.Fatalf("Expected 201 creating hardware, got %d: %s", w.Code, w.Body.String())
		}
		hardwareIDs = append(hardwareIDs, testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string))
	}

	w := testutil.DoRequest(r, "POST", "/api/v1/items/"+itemID+"/cabinets", gin.H{
		"width": 450.0, "height": 2100.0, "depth": 560.0,
		"hardware": []gin.H{{"hardware_id": hardwareIDs[0], "quantity": 2}},
	})
	if w.Code != 201 {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	cabinetID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	// A non-nil hardware array swaps the lines wholesale
	w = testutil.DoRequest(r, "PUT", "/api/v1/cabinets/"+cabinetID, gin.H{
		"hardware": []gin.H{{"hardware_id": hardwareIDs[1], "quantity": 6}},
	})
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	cabinet := testutil.ParseResponse(w)["data"].(map[string]interface{})
	lines := cabinet["hardware"].([]interface{})
	if len(lines) != 1 {
		t.Fatalf("Expected lines replaced, got %d lines", len(lines))
	}
	line := lines[0].(map[string]interface{})
	if line["hardware_id"] != hardwareIDs[1] {
		t.Errorf("Expected new hardware line, got %v", line["hardware_id"])
	}
	if line["quantity"].(float64) != 6 {
		t.Errorf("Expected quantity 6, got %v", line["quantity"])
	}
}

func TestTemplateCabinetCategoryValidation(t *testing.T) {
	r, _ := setupCabinetTest(t)

	w := testutil.DoRequest(r, "POST", "/api/v1/template-cabinets", gin.H{
		"category": "floating",
		"type":     "door",
		"width":    600.0,
		"height":   720.0,
		"depth":    560.0,
	})
	if w.Code != 400 {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
	errs := testutil.ParseResponse(w)["data"].(map[string]interface{})["errors"].(map[string]interface{})
	if errs["category"] != "Unknown cabinet category" {
		t.Errorf("Unexpected category error: %v", errs["category"])
	}
}
