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

type CustomerHandler struct {
	DB *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler { return &CustomerHandler{DB: db} }

// List: GET /api/customers – newest first
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	var customers []models.Customer
	if err := h.DB.Order("created_at desc").Find(&customers).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_customers", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, customers)
}

// Get: GET /api/customers/{id}
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var customer models.Customer
	if err := h.DB.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "customer_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_customer", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, customer)
}

// Create: POST /api/customers
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
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
	customer := models.Customer{Name: input.Name, Phone: input.Phone, Email: input.Email, Address: input.Address, GSTNumber: input.GSTNumber}
	if err := h.DB.Create(&customer).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "customer_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, customer)
}

// Update: PUT /api/customers/{id} – partial patch of the recognized fields;
// anything else in the body is ignored.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var customer models.Customer
	if err := h.DB.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "customer_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_customer", nil)
		return
	}
	if err := h.DB.Model(&customer).Updates(updates).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "customer_update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, customer)
}

// Delete: DELETE /api/customers/{id} – hard delete
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res := h.DB.Delete(&models.Customer{}, "id = ?", id)
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "customer_delete_failed", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "customer_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Customer deleted successfully"})
}
