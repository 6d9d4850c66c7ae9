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

func setupCustomerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(store.FromDB(db))
	services := service.NewServices(repos, cache.NewMemoryStore(), &config.Config{})
	h := NewHandlers(services)

	r := testutil.SetupRouter()
	r.GET("/api/v1/customers", h.Customer.List)
	r.POST("/api/v1/customers", h.Customer.Create)
	r.GET("/api/v1/customers/:id", h.Customer.Get)
	r.PUT("/api/v1/customers/:id", h.Customer.Update)
	r.DELETE("/api/v1/customers/:id", h.Customer.Delete)

	return r, db
}

func TestCustomerCreateAndList(t *testing.T) {
	r, _ := setupCustomerTest(t)

	for _, name := range []string{"Zetland Kitchens", "Acme Joinery"} {
		w := testutil.DoRequest(r, "POST", "/api/v1/customers", gin.H{
			"company_name": name,
			"contact_name": "Sam Carter",
			"email":        "sam@example.com",
		})
		if w.Code != 201 {
			t.Fatalf("Expected 201 creating %q, got %d: %s", name, w.Code, w.Body.String())
		}
	}

	w := testutil.DoRequest(r, "GET", "/api/v1/customers", nil)
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	items := resp["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("Expected 2 customers, got %d", len(items))
	}

	// Sorted by company name
	first := items[0].(map[string]interface{})
	if first["company_name"] != "Acme Joinery" {
		t.Errorf("Expected Acme Joinery first, got %v", first["company_name"])
	}
}

func TestCustomerCreateValidation(t *testing.T) {
	r, _ := setupCustomerTest(t)

	w := testutil.DoRequest(r, "POST", "/api/v1/customers", gin.H{
		"company_name": "   ",
	})
	if w.Code != 400 {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	errs := resp["data"].(map[string]interface{})["errors"].(map[string]interface{})
	if errs["company_name"] != "Company name is required" {
		t.Errorf("Unexpected field error: %v", errs["company_name"])
	}
}

func TestCustomerCreateBadEmail(t *testing.T) {
	r, _ := setupCustomerTest(t)

	w := testutil.DoRequest(r, "POST", "/api/v1/customers", gin.H{
		"company_name": "Acme Joinery",
		"email":        "not-an-email",
	})
	if w.Code != 400 {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	errs := resp["data"].(map[string]interface{})["errors"].(map[string]interface{})
	if _, ok := errs["email"]; !ok {
		t.Errorf("Expected an email field error, got %v", errs)
	}
}

func TestCustomerGetNotFound(t *testing.T) {
	r, _ := setupCustomerTest(t)

	w := testutil.DoRequest(r, "GET", "/api/v1/customers/nonexistent", nil)
	if w.Code != 404 {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCustomerPartialUpdate(t *testing.T) {
	r, db := setupCustomerTest(t)
	testutil.SeedCustomer(t, db, "cust-partial-update-000000000001", "Harbour Cabinets")

	w := testutil.DoRequest(r, "PUT", "/api/v1/customers/cust-partial-update-000000000001", gin.H{
		"contact_name": "Lee Morgan",
	})
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["contact_name"] != "Lee Morgan" {
		t.Errorf("Expected contact updated, got %v", data["contact_name"])
	}
	if data["company_name"] != "Harbour Cabinets" {
		t.Errorf("Expected company name untouched, got %v", data["company_name"])
	}
}

func TestCustomerDelete(t *testing.T) {
	r, db := setupCustomerTest(t)
	testutil.SeedCustomer(t, db, "cust-delete-00000000000000000001", "Old Client Pty")

	w := testutil.DoRequest(r, "DELETE", "/api/v1/customers/cust-delete-00000000000000000001", nil)
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/customers/cust-delete-00000000000000000001", nil)
	if w.Code != 404 {
		t.Fatalf("Expected 404 after delete, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCustomerDeleteWithProjectsConflict(t *testing.T) {
	r, db := setupCustomerTest(t)
	customer := testutil.SeedCustomer(t, db, "cust-referenced-0000000000000001", "Busy Client Pty")

	qp := testutil.SeedQuoteProject(t, db, "qp-for-customer-0000000000000001", "Kitchen reno", true, "draft")
	if err := db.Model(qp).Update("customer_id", customer.ID).Error; err != nil {
		t.Fatalf("Failed to link quote to customer: %v", err)
	}

	w := testutil.DoRequest(r, "DELETE", "/api/v1/customers/"+customer.ID, nil)
	if w.Code != 409 {
		t.Fatalf("Expected 409, got %d: %s", w.Code, w.Body.String())
	}

	// Row must survive the rejected delete
	w = testutil.DoRequest(r, "GET", "/api/v1/customers/"+customer.ID, nil)
	if w.Code != 200 {
		t.Fatalf("Expected customer to still exist, got %d: %s", w.Code, w.Body.String())
	}
}
