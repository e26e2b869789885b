package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"poultry-books/internal/httpx"
	"poultry-books/internal/models"
	"poultry-books/internal/services"
	"poultry-books/internal/validation"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type InvoiceHandler struct {
	DB  *gorm.DB
	Svc *services.PostingService
}

func NewInvoiceHandler(db *gorm.DB, svc *services.PostingService) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Svc: svc}
}

// List: GET /api/invoices?customerId=...&status=...
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	dbq := h.DB.Order("created_at desc")
	if customerID := r.URL.Query().Get("customerId"); customerID != "" {
		dbq = dbq.Where("customer_id = ?", customerID)
	}
	if status := r.URL.Query().Get("status"); status != "" {
		dbq = dbq.Where("status = ?", status)
	}
	var invoices []models.Invoice
	if err := dbq.Find(&invoices).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, invoices)
}

// Get: GET /api/invoices/{id}
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var inv models.Invoice
	if err := h.DB.First(&inv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Create: POST /api/invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InvoiceNumber string        `json:"invoiceNumber"`
		CustomerID    string        `json:"customerId"`
		Date          string        `json:"date"`
		Subtotal      float64       `json:"subtotal"`
		Tax           float64       `json:"tax"`
		Total         float64       `json:"total"`
		PaidAmount    float64       `json:"paidAmount"`
		PaymentMethod string        `json:"paymentMethod"`
		Cages         []models.Cage `json:"cages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("invoiceNumber", req.InvoiceNumber, v)
	validation.Required("customerId", req.CustomerID, v)
	validation.Required("date", req.Date, v)
	validation.PositiveFloat("subtotal", req.Subtotal, v)
	validation.NonNegativeFloat("tax", req.Tax, v)
	validation.PositiveFloat("total", req.Total, v)
	validation.NonNegativeFloat("paidAmount", req.PaidAmount, v)
	validateCages(req.Cages, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"date": "invalid_date"})
		return
	}
	inv, err := h.Svc.CreateInvoice(services.InvoiceInput{
		InvoiceNumber: req.InvoiceNumber,
		CustomerID:    req.CustomerID,
		Date:          date,
		Subtotal:      req.Subtotal,
		Tax:           req.Tax,
		Total:         req.Total,
		PaidAmount:    req.PaidAmount,
		PaymentMethod: req.PaymentMethod,
		Cages:         req.Cages,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}
