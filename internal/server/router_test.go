package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"poultry-books/internal/config"
	"poultry-books/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.Vendor{}, &models.DeliveryChallan{}, &models.Invoice{}, &models.LedgerEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	cfg := config.Config{Port: "0", Env: "test", CORSOrigins: "*"}
	return New(db, cfg), db
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
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

func TestHealthEndpoints(t *testing.T) {
	h, _ := setupRouter(t)

	w := do(t, h, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("healthz got %d", w.Code)
	}

	w = do(t, h, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("api health got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["environment"] != "test" || body["timestamp"] == "" {
		t.Fatalf("health body: %#v", body)
	}
}

func TestUnknownRoute(t *testing.T) {
	h, _ := setupRouter(t)
	w := do(t, h, http.MethodGet, "/api/nothing-here", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "route_not_found") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

// Full purchase-and-sale flow exercised over the wire.
func TestPurchaseAndSaleFlow(t *testing.T) {
	h, _ := setupRouter(t)

	// Vendor and customer.
	w := do(t, h, http.MethodPost, "/api/vendors", `{"name":"Acme Poultry"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("vendor create got %d body=%s", w.Code, w.Body.String())
	}
	var vendor models.Vendor
	if err := json.Unmarshal(w.Body.Bytes(), &vendor); err != nil {
		t.Fatalf("decode vendor: %v", err)
	}

	w = do(t, h, http.MethodPost, "/api/customers", `{"name":"Hotel Blue"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("customer create got %d", w.Code)
	}
	var customer models.Customer
	if err := json.Unmarshal(w.Body.Bytes(), &customer); err != nil {
		t.Fatalf("decode customer: %v", err)
	}

	// Purchase.
	challanBody := `{"dcNumber":"DC-001","vendorId":"` + vendor.ID + `","date":"2025-01-15","totalBirds":10,"totalWeight":25,"purchaseRate":100,"cages":[{"cageNumber":"C1","birds":10,"weight":25,"rate":100,"amount":2500}]}`
	w = do(t, h, http.MethodPost, "/api/delivery-challans", challanBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("challan create got %d body=%s", w.Code, w.Body.String())
	}

	// Sale.
	invoiceBody := `{"invoiceNumber":"INV-001","customerId":"` + customer.ID + `","date":"2025-02-01","subtotal":5000,"tax":0,"total":5000,"paidAmount":5000,"paymentMethod":"cash","cages":[{"cageNumber":"C1","birds":10,"weight":25,"rate":200,"amount":5000}]}`
	w = do(t, h, http.MethodPost, "/api/invoices", invoiceBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("invoice create got %d body=%s", w.Code, w.Body.String())
	}

	// Both sides show up in the ledger, newest first.
	w = do(t, h, http.MethodGet, "/api/ledger", "")
	var entries []models.LedgerEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode ledger: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ledger entries = %d, want 2", len(entries))
	}

	// Settle the purchase.
	var purchase models.LedgerEntry
	for _, e := range entries {
		if e.Type == models.LedgerTypePurchase {
			purchase = e
		}
	}
	w = do(t, h, http.MethodPatch, "/api/ledger/"+purchase.ID, `{"paid":2500}`)
	if w.Code != http.StatusOK {
		t.Fatalf("ledger patch got %d body=%s", w.Code, w.Body.String())
	}

	// Dashboard reflects the counts and the settled balances.
	w = do(t, h, http.MethodGet, "/api/dashboard/summary", "")
	if w.Code != http.StatusOK {
		t.Fatalf("summary got %d", w.Code)
	}
	var summary map[string]float64
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary["customers"] != 1 || summary["vendors"] != 1 || summary["challans"] != 1 || summary["invoices"] != 1 {
		t.Fatalf("summary counts: %#v", summary)
	}
	if summary["receivable"] != 0 || summary["payable"] != 0 {
		t.Fatalf("summary balances: %#v", summary)
	}
}
