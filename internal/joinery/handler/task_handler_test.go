package handler

import (
	"strings"
	"testing"

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

func setupTaskTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(store.FromDB(db))
	services := service.NewServices(repos, cache.NewMemoryStore(), &config.Config{})
	h := NewHandlers(services)

	r := testutil.SetupRouter()
	r.GET("/api/v1/tasks", h.Task.View)
	r.GET("/api/v1/quote-projects/:id/tasks", h.Task.ListByProject)
	r.POST("/api/v1/quote-projects/:id/tasks", h.Task.Create)
	r.PUT("/api/v1/tasks/:id", h.Task.Update)
	r.PUT("/api/v1/tasks/:id/flag", h.Task.Flag)
	r.DELETE("/api/v1/tasks/:id", h.Task.Delete)

	return r, db
}

func TestTaskCreateValidation(t *testing.T) {
	r, db := setupTaskTest(t)
	testutil.SeedQuoteProject(t, db, "proj-task-create-000000000000001", "Wardrobe build", false, "in_progress")

	w := testutil.DoRequest(r, "POST", "/api/v1/quote-projects/proj-task-create-000000000000001/tasks", gin.H{
		"description": "  ",
	})
	if w.Code != 400 {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(r, "POST", "/api/v1/quote-projects/proj-task-create-000000000000001/tasks", gin.H{
		"description": "Order hinges",
	})
	if w.Code != 201 {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestTaskFlagLimit(t *testing.T) {
	r, db := setupTaskTest(t)
	testutil.SeedQuoteProject(t, db, "proj-flag-limit-0000000000000001", "Big job", false, "in_progress")

	testutil.SeedTask(t, db, "task-flagged-1-00000000000000001", "proj-flag-limit-0000000000000001", "First", true)
	testutil.SeedTask(t, db, "task-flagged-2-00000000000000001", "proj-flag-limit-0000000000000001", "Second", true)
	testutil.SeedTask(t, db, "task-flagged-3-00000000000000001", "proj-flag-limit-0000000000000001", "Third", true)
	fourth := testutil.SeedTask(t, db, "task-unflagged-00000000000000001", "proj-flag-limit-0000000000000001", "Fourth", false)

	// Fourth flag exceeds the limit
	w := testutil.DoRequest(r, "PUT", "/api/v1/tasks/"+fourth.ID+"/flag", gin.H{"is_flagged": true})
	if w.Code != 409 {
		t.Fatalf("Expected 409, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if !strings.Contains(resp["message"].(string), "At most 3 tasks") {
		t.Errorf("Unexpected conflict message: %v", resp["message"])
	}

	// The rejected flag must not have touched the row
	var stored entity.ProjectTask
	if err := db.First(&stored, "id = ?", fourth.ID).Error; err != nil {
		t.Fatalf("Failed to reload task: %v", err)
	}
	if stored.IsFlagged {
		t.Fatal("Expected task to stay unflagged after rejected request")
	}

	// Unflagging one frees a slot
	w = testutil.DoRequest(r, "PUT", "/api/v1/tasks/task-flagged-1-00000000000000001/flag", gin.H{"is_flagged": false})
	if w.Code != 200 {
		t.Fatalf("Expected 200 unflagging, got %d: %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(r, "PUT", "/api/v1/tasks/"+fourth.ID+"/flag", gin.H{"is_flagged": true})
	if w.Code != 200 {
		t.Fatalf("Expected 200 after slot freed, got %d: %s", w.Code, w.Body.String())
	}
}

func TestTaskFlagIgnoresCompletedProjects(t *testing.T) {
	r, db := setupTaskTest(t)

	// Three flags parked on a finished project
	testutil.SeedQuoteProject(t, db, "proj-finished-000000000000000001", "Done job", false, "completed")
	testutil.SeedTask(t, db, "task-done-1-00000000000000000001", "proj-finished-000000000000000001", "Old one", true)
	testutil.SeedTask(t, db, "task-done-2-00000000000000000001", "proj-finished-000000000000000001", "Old two", true)
	testutil.SeedTask(t, db, "task-done-3-00000000000000000001", "proj-finished-000000000000000001", "Old three", true)

	testutil.SeedQuoteProject(t, db, "proj-active-00000000000000000001", "Live job", false, "in_progress")
	task := testutil.SeedTask(t, db, "task-live-0000000000000000000001", "proj-active-00000000000000000001", "New work", false)

	w := testutil.DoRequest(r, "PUT", "/api/v1/tasks/"+task.ID+"/flag", gin.H{"is_flagged": true})
	if w.Code != 200 {
		t.Fatalf("Expected flags on completed projects not to count, got %d: %s", w.Code, w.Body.String())
	}
}

func TestTaskFlagRequiresField(t *testing.T) {
	r, db := setupTaskTest(t)
	testutil.SeedQuoteProject(t, db, "proj-flag-body-000000000000001", "Job", false, "in_progress")
	task := testutil.SeedTask(t, db, "task-flag-body-000000000000001", "proj-flag-body-000000000000001", "Work", false)

	w := testutil.DoRequest(r, "PUT", "/api/v1/tasks/"+task.ID+"/flag", gin.H{})
	if w.Code != 400 {
		t.Fatalf("Expected 400 without is_flagged, got %d: %s", w.Code, w.Body.String())
	}
}

func TestTaskOrderingInList(t *testing.T) {
	r, db := setupTaskTest(t)
	testutil.SeedQuoteProject(t, db, "proj-task-order-0000000000000001", "Ordered job", false, "in_progress")

	testutil.SeedTask(t, db, "task-order-plain-000000000000001", "proj-task-order-0000000000000001", "Plain", false)
	done := testutil.SeedTask(t, db, "task-order-done-0000000000000001", "proj-task-order-0000000000000001", "Done", false)
	testutil.SeedTask(t, db, "task-order-flag-0000000000000001", "proj-task-order-0000000000000001", "Flagged", true)
	db.Model(done).Update("is_completed", true)

	w := testutil.DoRequest(r, "GET", "/api/v1/quote-projects/proj-task-order-0000000000000001/tasks", nil)
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	items := testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	var descs []string
	for _, item := range items {
		descs = append(descs, item.(map[string]interface{})["description"].(string))
	}
	want := []string{"Flagged", "Plain", "Done"}
	for i := range want {
		if i >= len(descs) || descs[i] != want[i] {
			t.Fatalf("Expected task order %v, got %v", want, descs)
		}
	}
}

func TestTaskViewSkipsCompletedProjects(t *testing.T) {
	r, db := setupTaskTest(t)

	testutil.SeedQuoteProject(t, db, "proj-view-live-00000000000000001", "Live job", false, "in_progress")
	testutil.SeedQuoteProject(t, db, "proj-view-done-00000000000000001", "Done job", false, "completed")
	testutil.SeedQuoteProject(t, db, "quote-view-000000000000000000001", "Quote only", true, "draft")
	testutil.SeedTask(t, db, "task-view-live-00000000000000001", "proj-view-live-00000000000000001", "Active work", false)
	testutil.SeedTask(t, db, "task-view-done-00000000000000001", "proj-view-done-00000000000000001", "Archived work", false)

	w := testutil.DoRequest(r, "GET", "/api/v1/tasks", nil)
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	items := testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected one active project group, got %d", len(items))
	}
	group := items[0].(map[string]interface{})
	project := group["project"].(map[string]interface{})
	if project["name"] != "Live job" {
		t.Errorf("Expected the live project, got %v", project["name"])
	}
	tasks := group["tasks"].([]interface{})
	if len(tasks) != 1 {
		t.Fatalf("Expected one task in group, got %d", len(tasks))
	}
}
