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
)

func setupSettingTest(t *testing.T) *gin.Engine {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(store.FromDB(db))
	services := service.NewServices(repos, cache.NewMemoryStore(), &config.Config{})
	h := NewHandlers(services)

	r := testutil.SetupRouter()
	r.GET("/api/v1/settings", h.Setting.List)
	r.PUT("/api/v1/settings", h.Setting.Put)
	r.GET("/api/v1/settings/:key", h.Setting.Get)

	return r
}

func TestSettingsUpsert(t *testing.T) {
	r := setupSettingTest(t)

	w := testutil.DoRequest(r, "PUT", "/api/v1/settings", gin.H{
		"labor_rate":   "85.50",
		"board_markup": "1.4",
		"company_abn":  "12 345 678 901",
	})
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/settings/labor_rate", nil)
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["value"] != "85.50" {
		t.Errorf("Expected stored value, got %v", data["value"])
	}

	// Second write replaces, not duplicates
	w = testutil.DoRequest(r, "PUT", "/api/v1/settings", gin.H{"labor_rate": "90.00"})
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/settings", nil)
	items := testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 3 {
		t.Fatalf("Expected 3 settings after upsert, got %d", len(items))
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/settings/labor_rate", nil)
	data = testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["value"] != "90.00" {
		t.Errorf("Expected updated value, got %v", data["value"])
	}
}

func TestSettingsRejectEmptyBody(t *testing.T) {
	r := setupSettingTest(t)

	w := testutil.DoRequest(r, "PUT", "/api/v1/settings", gin.H{})
	if w.Code != 400 {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSettingGetUnknownKey(t *testing.T) {
	r := setupSettingTest(t)

	w := testutil.DoRequest(r, "GET", "/api/v1/settings/nonexistent", nil)
	if w.Code != 404 {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
