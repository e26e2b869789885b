package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"poultry-books/internal/httpx"
	"poultry-books/internal/models"
	"poultry-books/internal/services"
	"poultry-books/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type LedgerHandler struct {
	DB  *gorm.DB
	Svc *services.LedgerService
}

func NewLedgerHandler(db *gorm.DB, svc *services.LedgerService) *LedgerHandler {
	return &LedgerHandler{DB: db, Svc: svc}
}

func (h *LedgerHandler) filtered(r *http.Request) *gorm.DB {
	dbq := h.DB.Order("created_at desc")
	if customerID := r.URL.Query().Get("customerId"); customerID != "" {
		dbq = dbq.Where("customer_id = ?", customerID)
	}
	if vendorID := r.URL.Query().Get("vendorId"); vendorID != "" {
		dbq = dbq.Where("vendor_id = ?", vendorID)
	}
	return dbq
}

// List: GET /api/ledger?customerId=...&vendorId=...
func (h *LedgerHandler) List(w http.ResponseWriter, r *http.Request) {
	var entries []models.LedgerEntry
	if err := h.filtered(r).Find(&entries).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_ledger", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, entries)
}

// Get: GET /api/ledger/{id}
func (h *LedgerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var entry models.LedgerEntry
	if err := h.DB.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "ledger_entry_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_ledger_entry", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, entry)
}

// Patch: PATCH /api/ledger/{id} – payment tracking. Body: {"paid": n}.
func (h *LedgerHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body struct {
		Paid *float64 `json:"paid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if body.Paid == nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"paid": "required"})
		return
	}
	entry, err := h.Svc.ApplyPayment(id, *body.Paid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entry)
}

// Export: GET /api/ledger/export – xlsx download honoring the list filters.
func (h *LedgerHandler) Export(w http.ResponseWriter, r *http.Request) {
	var entries []models.LedgerEntry
	if err := h.filtered(r).Find(&entries).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_ledger", nil)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headers := []string{"Date", "Type", "Description", "Amount", "Paid", "Balance"}
	for i, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
	}
	for i, e := range entries {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), e.Date.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), e.Type)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), e.Description)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), e.Amount)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), e.Paid)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), e.Balance)
	}

	filename := "ledger-" + time.Now().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := f.Write(w); err != nil {
		// headers already sent; log-and-drop is all that is left
		_ = err
	}
}
