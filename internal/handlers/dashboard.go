package handlers

import (
	"net/http"

	"poultry-books/internal/httpx"
	"poultry-books/internal/models"

	"gorm.io/gorm"
)

type DashboardHandler struct {
	DB *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler { return &DashboardHandler{DB: db} }

// Summary: GET /api/dashboard/summary – entity counts plus outstanding
// receivable (unpaid invoice balances) and payable (unpaid purchase
// balances) totals.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	var customerCount, vendorCount, challanCount, invoiceCount int64
	h.DB.Model(&models.Customer{}).Count(&customerCount)
	h.DB.Model(&models.Vendor{}).Count(&vendorCount)
	h.DB.Model(&models.DeliveryChallan{}).Count(&challanCount)
	h.DB.Model(&models.Invoice{}).Count(&invoiceCount)

	var receivable, payable float64
	h.DB.Model(&models.LedgerEntry{}).
		Where("type = ?", models.LedgerTypeInvoice).
		Select("coalesce(sum(balance), 0)").
		Scan(&receivable)
	h.DB.Model(&models.LedgerEntry{}).
		Where("type = ?", models.LedgerTypePurchase).
		Select("coalesce(sum(balance), 0)").
		Scan(&payable)

	httpx.JSON(w, http.StatusOK, map[string]any{
		"customers":  customerCount,
		"vendors":    vendorCount,
		"challans":   challanCount,
		"invoices":   invoiceCount,
		"receivable": receivable,
		"payable":    payable,
	})
}
