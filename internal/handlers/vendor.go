package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"poultry-books/internal/httpx"
	"poultry-books/internal/models"
	"poultry-books/internal/validation"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type VendorHandler struct {
	DB *gorm.DB
}

func NewVendorHandler(db *gorm.DB) *VendorHandler { return &VendorHandler{DB: db} }

// List: GET /api/vendors – newest first
func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	var vendors []models.Vendor
	if err := h.DB.Order("created_at desc").Find(&vendors).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_vendors", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, vendors)
}

// Get: GET /api/vendors/{id}
func (h *VendorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var vendor models.Vendor
	if err := h.DB.First(&vendor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "vendor_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_vendor", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, vendor)
}

// Create: POST /api/vendors
func (h *VendorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name      string `json:"name"`
		Phone     string `json:"phone"`
		Email     string `json:"email"`
		Address   string `json:"address"`
		GSTNumber string `json:"gst_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", input.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	vendor := models.Vendor{Name: input.Name, Phone: input.Phone, Email: input.Email, Address: input.Address, GSTNumber: input.GSTNumber}
	if err := h.DB.Create(&vendor).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "vendor_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, vendor)
}

// Update: PUT /api/vendors/{id} – partial patch, unknown fields ignored.
func (h *VendorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body struct {
		Name      *string `json:"name"`
		Phone     *string `json:"phone"`
		Email     *string `json:"email"`
		Address   *string `json:"address"`
		GSTNumber *string `json:"gst_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	updates := map[string]any{}
	if body.Name != nil {
		updates["name"] = *body.Name
	}
	if body.Phone != nil {
		updates["phone"] = *body.Phone
	}
	if body.Email != nil {
		updates["email"] = *body.Email
	}
	if body.Address != nil {
		updates["address"] = *body.Address
	}
	if body.GSTNumber != nil {
		updates["gst_number"] = *body.GSTNumber
	}
	if len(updates) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "no_valid_fields", nil)
		return
	}
	var vendor models.Vendor
	if err := h.DB.First(&vendor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "vendor_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_vendor", nil)
		return
	}
	if err := h.DB.Model(&vendor).Updates(updates).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "vendor_update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, vendor)
}

// Delete: DELETE /api/vendors/{id} – hard delete
func (h *VendorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res := h.DB.Delete(&models.Vendor{}, "id = ?", id)
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "vendor_delete_failed", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "vendor_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Vendor deleted successfully"})
}
