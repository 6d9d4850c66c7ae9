package handler

import (
	"testing"
	"time"

	"github.com/bitfantasy/joinery/internal/config"
	"github.com/bitfantasy/joinery/internal/joinery/cache"
	"github.com/bitfantasy/joinery/internal/joinery/entity"
	"github.com/bitfantasy/joinery/internal/joinery/repository"
	"github.com/bitfantasy/joinery/internal/joinery/service"
	"github.com/bitfantasy/joinery/internal/joinery/store"
	"github.com/bitfantasy/joinery/internal/joinery/testutil"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupQuoteProjectTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(store.FromDB(db))
	services := service.NewServices(repos, cache.NewMemoryStore(), &config.Config{})
	h := NewHandlers(services)

	r := testutil.SetupRouter()
	r.GET("/api/v1/quotes", h.QuoteProject.ListQuotes)
	r.GET("/api/v1/projects", h.QuoteProject.ListProjects)
	r.GET("/api/v1/schedule", h.QuoteProject.Schedule)
	r.POST("/api/v1/quote-projects", h.QuoteProject.Create)
	r.GET("/api/v1/quote-projects/:id", h.QuoteProject.Get)
	r.PUT("/api/v1/quote-projects/:id", h.QuoteProject.Update)
	r.DELETE("/api/v1/quote-projects/:id", h.QuoteProject.Delete)
	r.GET("/api/v1/quote-projects/:id/installers", h.QuoteProject.ListInstallers)
	r.POST("/api/v1/quote-projects/:id/installers", h.QuoteProject.AssignInstaller)
	r.DELETE("/api/v1/quote-projects/:id/installers/:installerId", h.QuoteProject.UnassignInstaller)

	return r, db
}

func listNames(t *testing.T, r *gin.Engine, path string) []string {
	t.Helper()
	w := testutil.DoRequest(r, "GET", path, nil)
	if w.Code != 200 {
		t.Fatalf("Expected 200 on %s, got %d: %s", path, w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	items := resp["data"].(map[string]interface{})["items"].([]interface{})
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.(map[string]interface{})["name"].(string))
	}
	return names
}

func TestQuoteProjectDuality(t *testing.T) {
	r, _ := setupQuoteProjectTest(t)

	// Default is a quote in draft
	w := testutil.DoRequest(r, "POST", "/api/v1/quote-projects", gin.H{
		"name": "Pantry fitout",
	})
	if w.Code != 201 {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	quote := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if quote["is_quote"] != true || quote["status"] != "draft" {
		t.Fatalf("Expected draft quote, got is_quote=%v status=%v", quote["is_quote"], quote["status"])
	}
	if quote["quote_number"] == "" {
		t.Fatal("Expected a generated quote number")
	}

	// Explicit project starts in progress
	w = testutil.DoRequest(r, "POST", "/api/v1/quote-projects", gin.H{
		"name":     "Office shelving",
		"is_quote": false,
	})
	if w.Code != 201 {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	project := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if project["is_quote"] != false || project["status"] != "in_progress" {
		t.Fatalf("Expected in-progress project, got is_quote=%v status=%v", project["is_quote"], project["status"])
	}

	quotes := listNames(t, r, "/api/v1/quotes")
	if len(quotes) != 1 || quotes[0] != "Pantry fitout" {
		t.Errorf("Expected only the quote in /quotes, got %v", quotes)
	}
	projects := listNames(t, r, "/api/v1/projects")
	if len(projects) != 1 || projects[0] != "Office shelving" {
		t.Errorf("Expected only the project in /projects, got %v", projects)
	}
}

func TestQuoteConversion(t *testing.T) {
	r, _ := setupQuoteProjectTest(t)

	w := testutil.DoRequest(r, "POST", "/api/v1/quote-projects", gin.H{
		"name": "Laundry cabinets",
	})
	if w.Code != 201 {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w = testutil.DoRequest(r, "PUT", "/api/v1/quote-projects/"+id, gin.H{
		"is_quote": false,
	})
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	converted := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if converted["is_quote"] != false {
		t.Error("Expected conversion to project")
	}
	if converted["status"] != "in_progress" {
		t.Errorf("Expected status to default to in_progress on conversion, got %v", converted["status"])
	}

	// Quote lists must reflect the flip, not a stale cache
	if quotes := listNames(t, r, "/api/v1/quotes"); len(quotes) != 0 {
		t.Errorf("Expected no quotes after conversion, got %v", quotes)
	}
	if projects := listNames(t, r, "/api/v1/projects"); len(projects) != 1 {
		t.Errorf("Expected one project after conversion, got %v", projects)
	}
}

func TestQuoteProjectValidation(t *testing.T) {
	r, _ := setupQuoteProjectTest(t)

	w := testutil.DoRequest(r, "POST", "/api/v1/quote-projects", gin.H{
		"name":        "",
		"customer_id": "no-such-customer",
	})
	if w.Code != 400 {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
	errs := testutil.ParseResponse(w)["data"].(map[string]interface{})["errors"].(map[string]interface{})
	if errs["name"] != "Name is required" {
		t.Errorf("Unexpected name error: %v", errs["name"])
	}
	if errs["customer_id"] != "Customer not found" {
		t.Errorf("Unexpected customer error: %v", errs["customer_id"])
	}
}

func TestScheduleOrdering(t *testing.T) {
	r, db := setupQuoteProjectTest(t)

	testutil.SeedQuoteProject(t, db, "proj-schedule-b-0000000000000001", "Second install", false, "in_progress")
	testutil.SeedQuoteProject(t, db, "proj-schedule-a-0000000000000001", "First install", false, "in_progress")
	testutil.SeedQuoteProject(t, db, "proj-schedule-n-0000000000000001", "Unscheduled", false, "in_progress")
	testutil.SeedQuoteProject(t, db, "quote-schedule-x-000000000000001", "Just a quote", true, "draft")

	db.Model(&entity.QuoteProject{}).Where("id = ?", "proj-schedule-a-0000000000000001").
		Update("install_commencement_date", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	db.Model(&entity.QuoteProject{}).Where("id = ?", "proj-schedule-b-0000000000000001").
		Update("install_commencement_date", time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC))

	names := listNames(t, r, "/api/v1/schedule")
	want := []string{"First install", "Second install", "Unscheduled"}
	if len(names) != len(want) {
		t.Fatalf("Expected %d scheduled projects, got %v", len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Schedule position %d: expected %q, got %q", i, want[i], names[i])
		}
	}
}

func TestInstallerAssignment(t *testing.T) {
	r, db := setupQuoteProjectTest(t)

	testutil.SeedQuoteProject(t, db, "proj-installers-0000000000000001", "Install job", false, "in_progress")
	installer := &entity.Installer{
		ID:        "installer-0000000000000000000001",
		Name:      "Jo Banks",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(installer).Error; err != nil {
		t.Fatalf("Failed to seed installer: %v", err)
	}

	w := testutil.DoRequest(r, "POST", "/api/v1/quote-projects/proj-installers-0000000000000001/installers", gin.H{
		"installer_id": installer.ID,
	})
	if w.Code != 201 {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/quote-projects/proj-installers-0000000000000001/installers", nil)
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	items := testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 assignment, got %d", len(items))
	}

	w = testutil.DoRequest(r, "DELETE", "/api/v1/quote-projects/proj-installers-0000000000000001/installers/"+installer.ID, nil)
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/quote-projects/proj-installers-0000000000000001/installers", nil)
	items = testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 0 {
		t.Fatalf("Expected no assignments after unassign, got %d", len(items))
	}
}

func TestQuoteProjectDeleteWithTasksConflict(t *testing.T) {
	r, db := setupQuoteProjectTest(t)

	testutil.SeedQuoteProject(t, db, "proj-with-tasks-0000000000000001", "Busy project", false, "in_progress")
	testutil.SeedTask(t, db, "task-blocking-000000000000000001", "proj-with-tasks-0000000000000001", "Order benchtops", false)

	w := testutil.DoRequest(r, "DELETE", "/api/v1/quote-projects/proj-with-tasks-0000000000000001", nil)
	if w.Code != 409 {
		t.Fatalf("Expected 409, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/quote-projects/proj-with-tasks-0000000000000001", nil)
	if w.Code != 200 {
		t.Fatalf("Expected project to survive, got %d: %s", w.Code, w.Body.String())
	}
}
