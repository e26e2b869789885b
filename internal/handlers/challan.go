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
	"gorm.io/gorm"
)

type ChallanHandler struct {
	DB  *gorm.DB
	Svc *services.PostingService
}

func NewChallanHandler(db *gorm.DB, svc *services.PostingService) *ChallanHandler {
	return &ChallanHandler{DB: db, Svc: svc}
}

// parseDate accepts RFC3339 datetimes (what the UI sends) or a bare
// YYYY-MM-DD date.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// validateCages checks every line item carries positive values.
func validateCages(cages []models.Cage, v validation.Violations) {
	if len(cages) == 0 {
		v["cages"] = "required"
		return
	}
	for i, c := range cages {
		field := fmt.Sprintf("cages[%d]", i)
		if c.CageNumber == "" {
			v[field+".cageNumber"] = "required"
		}
		if c.Birds <= 0 {
			v[field+".birds"] = "must_be_positive"
		}
		if c.Weight <= 0 {
			v[field+".weight"] = "must_be_positive"
		}
		if c.Rate <= 0 {
			v[field+".rate"] = "must_be_positive"
		}
		if c.Amount <= 0 {
			v[field+".amount"] = "must_be_positive"
		}
	}
}

// List: GET /api/delivery-challans?vendorId=...
func (h *ChallanHandler) List(w http.ResponseWriter, r *http.Request) {
	dbq := h.DB.Order("created_at desc")
	if vendorID := r.URL.Query().Get("vendorId"); vendorID != "" {
		dbq = dbq.Where("vendor_id = ?", vendorID)
	}
	var challans []models.DeliveryChallan
	if err := dbq.Find(&challans).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_challans", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, challans)
}

// Get: GET /api/delivery-challans/{id}
func (h *ChallanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var challan models.DeliveryChallan
	if err := h.DB.First(&challan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "challan_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_challan", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, challan)
}

// Create: POST /api/delivery-challans
func (h *ChallanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DCNumber     string        `json:"dcNumber"`
		VendorID     string        `json:"vendorId"`
		VendorName   string        `json:"vendorName"`
		Date         string        `json:"date"`
		TotalBirds   int           `json:"totalBirds"`
		TotalWeight  float64       `json:"totalWeight"`
		PurchaseRate float64       `json:"purchaseRate"`
		Cages        []models.Cage `json:"cages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("dcNumber", req.DCNumber, v)
	validation.Required("date", req.Date, v)
	validation.PositiveInt("totalBirds", req.TotalBirds, v)
	validation.PositiveFloat("totalWeight", req.TotalWeight, v)
	validation.PositiveFloat("purchaseRate", req.PurchaseRate, v)
	validateCages(req.Cages, v)
	if req.VendorID == "" && req.VendorName == "" {
		v["vendorId"] = "vendor_id_or_name_required"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"date": "invalid_date"})
		return
	}
	challan, err := h.Svc.CreateChallan(services.ChallanInput{
		DCNumber:     req.DCNumber,
		VendorID:     req.VendorID,
		VendorName:   req.VendorName,
		Date:         date,
		TotalBirds:   req.TotalBirds,
		TotalWeight:  req.TotalWeight,
		PurchaseRate: req.PurchaseRate,
		Cages:        req.Cages,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, challan)
}
