package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"poultry-books/internal/models"

	"github.com/go-chi/chi/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.Vendor{}, &models.DeliveryChallan{}, &models.Invoice{}, &models.LedgerEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func customerRouter(db *gorm.DB) http.Handler {
	h := NewCustomerHandler(db)
	r := chi.NewRouter()
	r.Get("/api/customers", h.List)
	r.Post("/api/customers", h.Create)
	r.Get("/api/customers/{id}", h.Get)
	r.Put("/api/customers/{id}", h.Update)
	r.Delete("/api/customers/{id}", h.Delete)
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCustomerCreateAndList(t *testing.T) {
	db := setupHandlerDB(t)
	r := customerRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/customers", `{"name":"Hotel Blue","phone":"123","gst_number":"GST1"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created models.Customer
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" || created.Status != "active" {
		t.Fatalf("unexpected created customer: %#v", created)
	}

	w = doJSON(t, r, http.MethodGet, "/api/customers", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list got %d", w.Code)
	}
	var list []models.Customer
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].GSTNumber != "GST1" {
		t.Fatalf("unexpected list: %#v", list)
	}
}

func TestCustomerCreateRequiresName(t *testing.T) {
	db := setupHandlerDB(t)
	r := customerRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/customers", `{"phone":"123"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "validation_failed") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestCustomerGetMissing(t *testing.T) {
	db := setupHandlerDB(t)
	r := customerRouter(db)

	w := doJSON(t, r, http.MethodGet, "/api/customers/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestCustomerUpdatePartial(t *testing.T) {
	db := setupHandlerDB(t)
	r := customerRouter(db)

	c := models.Customer{Name: "Hotel Blue", Phone: "111"}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := doJSON(t, r, http.MethodPut, "/api/customers/"+c.ID, `{"phone":"999"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var updated models.Customer
	if err := db.First(&updated, "id = ?", c.ID).Error; err != nil {
		t.Fatalf("reread: %v", err)
	}
	if updated.Phone != "999" || updated.Name != "Hotel Blue" {
		t.Fatalf("partial update clobbered fields: %#v", updated)
	}

	// No recognized fields is an error, not a no-op.
	w = doJSON(t, r, http.MethodPut, "/api/customers/"+c.ID, `{"bogus":true}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty patch got %d", w.Code)
	}
}

func TestCustomerDelete(t *testing.T) {
	db := setupHandlerDB(t)
	r := customerRouter(db)

	c := models.Customer{Name: "Gone"}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	w := doJSON(t, r, http.MethodDelete, "/api/customers/"+c.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Customer deleted successfully") {
		t.Fatalf("body = %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, "/api/customers/"+c.ID, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for second delete got %d", w.Code)
	}
}
