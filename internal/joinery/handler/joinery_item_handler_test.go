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

func setupJoineryItemTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(store.FromDB(db))
	services := service.NewServices(repos, cache.NewMemoryStore(), &config.Config{})
	h := NewHandlers(services)

	r := testutil.SetupRouter()
	r.GET("/api/v1/quote-projects/:id/items", h.JoineryItem.ListByQuoteProject)
	r.POST("/api/v1/quote-projects/:id/items", h.JoineryItem.Create)
	r.GET("/api/v1/items/:id", h.JoineryItem.Get)
	r.PUT("/api/v1/items/:id", h.JoineryItem.Update)
	r.DELETE("/api/v1/items/:id", h.JoineryItem.Delete)
	r.GET("/api/v1/items/:id/specialized-items", h.JoineryItem.ListSpecialized)
	r.POST("/api/v1/items/:id/specialized-items", h.JoineryItem.CreateSpecialized)
	r.DELETE("/api/v1/specialized-items/:id", h.JoineryItem.DeleteSpecialized)
	r.POST("/api/v1/hardware", h.Hardware.Create)
	r.DELETE("/api/v1/hardware/:id", h.Hardware.Delete)

	return r, db
}

func createItem(t *testing.T, r *gin.Engine, projectID, name string) map[string]interface{} {
	t.Helper()
	w := testutil.DoRequest(r, "POST", "/api/v1/quote-projects/"+projectID+"/items", gin.H{
		"name": name,
	})
	if w.Code != 201 {
		t.Fatalf("Expected 201 creating item, got %d: %s", w.Code, w.Body.String())
	}
	return testutil.ParseResponse(w)["data"].(map[string]interface{})
}

func TestJoineryItemInheritsQuoteFlag(t *testing.T) {
	r, db := setupJoineryItemTest(t)
	testutil.SeedQuoteProject(t, db, "proj-item-flag-00000000000000001", "Live project", false, "in_progress")

	item := createItem(t, r, "proj-item-flag-00000000000000001", "Base run")
	if item["is_quote"] != false {
		t.Errorf("Expected item to inherit the project flag, got is_quote=%v", item["is_quote"])
	}
}

func TestJoineryItemUnknownMaterialConflict(t *testing.T) {
	r, db := setupJoineryItemTest(t)
	testutil.SeedQuoteProject(t, db, "proj-item-badref-000000000000001", "Reno", true, "draft")

	w := testutil.DoRequest(r, "POST", "/api/v1/quote-projects/proj-item-badref-000000000000001/items", gin.H{
		"name":                "Wall run",
		"carcass_material_id": "no-such-material",
	})
	if w.Code != 409 {
		t.Fatalf("Expected 409 on unknown material, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSpecializedItemResolution(t *testing.T) {
	r, db := setupJoineryItemTest(t)
	testutil.SeedQuoteProject(t, db, "proj-spec-items-0000000000000001", "Kitchen", true, "draft")
	item := createItem(t, r, "proj-spec-items-0000000000000001", "Island bench")
	itemID := item["id"].(string)

	w := testutil.DoRequest(r, "POST", "/api/v1/hardware", gin.H{
		"name":          "Corner carousel",
		"cost_per_unit": 120.0,
	})
	if w.Code != 201 {
		t.Fatalf("Expected 201 creating hardware, got %d: %s", w.Code, w.Body.String())
	}
	hardwareID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w = testutil.DoRequest(r, "POST", "/api/v1/items/"+itemID+"/specialized-items", gin.H{
		"item_type": "hardware",
		"item_id":   hardwareID,
		"quantity":  2,
	})
	if w.Code != 201 {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	created := testutil.ParseResponse(w)["data"].(map[string]interface{})
	resolved, ok := created["resolved"].(map[string]interface{})
	if !ok || resolved["name"] != "Corner carousel" {
		t.Fatalf("Expected resolved hardware on creation, got %v", created["resolved"])
	}

	// Deleting the target leaves the reference dangling, not broken
	w = testutil.DoRequest(r, "DELETE", "/api/v1/hardware/"+hardwareID, nil)
	if w.Code != 200 {
		t.Fatalf("Expected 200 deleting hardware, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/items/"+itemID+"/specialized-items", nil)
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	rows := testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(rows) != 1 {
		t.Fatalf("Expected 1 specialized item, got %d", len(rows))
	}
	if rows[0].(map[string]interface{})["resolved"] != nil {
		t.Errorf("Expected dangling reference to resolve to nothing, got %v", rows[0].(map[string]interface{})["resolved"])
	}
}

func TestSpecializedItemDefaultQuantity(t *testing.T) {
	r, db := setupJoineryItemTest(t)
	testutil.SeedQuoteProject(t, db, "proj-spec-qty-000000000000000001", "Laundry", true, "draft")
	item := createItem(t, r, "proj-spec-qty-000000000000000001", "Broom cupboard")
	itemID := item["id"].(string)

	w := testutil.DoRequest(r, "POST", "/api/v1/hardware", gin.H{
		"name":          "Pull-out rail",
		"cost_per_unit": 35.0,
	})
	if w.Code != 201 {
		t.Fatalf("Expected 201 creating hardware, got %d: %s", w.Code, w.Body.String())
	}
	hardwareID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w = testutil.DoRequest(r, "POST", "/api/v1/items/"+itemID+"/specialized-items", gin.H{
		"item_type": "hardware",
		"item_id":   hardwareID,
	})
	if w.Code != 201 {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	created := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if created["quantity"] != 1.0 {
		t.Errorf("Expected omitted quantity to default to 1, got %v", created["quantity"])
	}
}

func TestSpecializedItemValidation(t *testing.T) {
	r, db := setupJoineryItemTest(t)
	testutil.SeedQuoteProject(t, db, "proj-spec-valid-0000000000000001", "Bathroom", true, "draft")
	item := createItem(t, r, "proj-spec-valid-0000000000000001", "Vanity")
	itemID := item["id"].(string)

	w := testutil.DoRequest(r, "POST", "/api/v1/items/"+itemID+"/specialized-items", gin.H{
		"item_type": "gadget",
		"item_id":   "whatever",
	})
	if w.Code != 400 {
		t.Fatalf("Expected 400 on unknown type, got %d: %s", w.Code, w.Body.String())
	}
	errs := testutil.ParseResponse(w)["data"].(map[string]interface{})["errors"].(map[string]interface{})
	if errs["item_type"] != "Item type must be hardware or material" {
		t.Errorf("Unexpected item_type error: %v", errs["item_type"])
	}

	w = testutil.DoRequest(r, "POST", "/api/v1/items/"+itemID+"/specialized-items", gin.H{
		"item_type": "hardware",
		"item_id":   "no-such-hardware",
	})
	if w.Code != 400 {
		t.Fatalf("Expected 400 on missing target, got %d: %s", w.Code, w.Body.String())
	}
	errs = testutil.ParseResponse(w)["data"].(map[string]interface{})["errors"].(map[string]interface{})
	if errs["item_id"] != "Referenced item not found" {
		t.Errorf("Unexpected item_id error: %v", errs["item_id"])
	}
}
