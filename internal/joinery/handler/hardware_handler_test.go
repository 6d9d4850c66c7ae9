package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bitfantasy/joinery/internal/config"
	"github.com/bitfantasy/joinery/internal/joinery/cache"
	"github.com/bitfantasy/joinery/internal/joinery/repository"
	"github.com/bitfantasy/joinery/internal/joinery/service"
	"github.com/bitfantasy/joinery/internal/joinery/store"
	"github.com/bitfantasy/joinery/internal/joinery/testutil"
	"github.com/gin-gonic/gin"
)

func setupHardwareTest(t *testing.T) *gin.Engine {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(store.FromDB(db))
	services := service.NewServices(repos, cache.NewMemoryStore(), &config.Config{})
	h := NewHandlers(services)

	r := testutil.SetupRouter()
	r.GET("/api/v1/hardware", h.Hardware.List)
	r.POST("/api/v1/hardware", h.Hardware.Create)
	r.POST("/api/v1/hardware/import", h.Hardware.Import)
	r.POST("/api/v1/suppliers", h.Supplier.Create)

	return r
}

func uploadCSV(t *testing.T, r *gin.Engine, path, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "pricelist.csv")
	if err != nil {
		t.Fatalf("Failed to build form file: %v", err)
	}
	fw.Write([]byte(content))
	mw.Close()

	req, _ := http.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHardwareListFilteredBySupplier(t *testing.T) {
	r := setupHardwareTest(t)

	w := testutil.DoRequest(r, "POST", "/api/v1/suppliers", gin.H{"name": "Blum"})
	if w.Code != 201 {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	supplierID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	for _, body := range []gin.H{
		{"name": "Blum hinge", "supplier_id": supplierID, "cost_per_unit": 4.0},
		{"name": "Generic hinge", "cost_per_unit": 1.5},
	} {
		w := testutil.DoRequest(r, "POST", "/api/v1/hardware", body)
		if w.Code != 201 {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/hardware?supplier_id="+supplierID, nil)
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	items := testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 filtered row, got %d", len(items))
	}
	if items[0].(map[string]interface{})["name"] != "Blum hinge" {
		t.Errorf("Unexpected filtered row: %v", items[0])
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/hardware", nil)
	items = testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("Expected 2 unfiltered rows, got %d", len(items))
	}
}

func TestHardwareImportEndpoint(t *testing.T) {
	r := setupHardwareTest(t)

	w := uploadCSV(t, r, "/api/v1/hardware/import", "name,cost_per_unit\nShelf pin,0.20\nHandle,6.40\n")
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["imported"].(float64) != 2 {
		t.Errorf("Expected 2 imported, got %v", data["imported"])
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/hardware", nil)
	items := testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("Expected imported rows listed, got %d", len(items))
	}
}

func TestHardwareImportRequiresFile(t *testing.T) {
	r := setupHardwareTest(t)

	w := testutil.DoRequest(r, "POST", "/api/v1/hardware/import", nil)
	if w.Code != 400 {
		t.Fatalf("Expected 400 without a file, got %d: %s", w.Code, w.Body.String())
	}
}
