package services

import (
	"errors"
	"fmt"
	"time"

	"poultry-books/internal/models"
	"poultry-books/internal/validation"

	"gorm.io/gorm"
)

// PostingService persists challans and invoices together with their derived
// ledger entry. Both inserts run inside a single transaction so a failed
// ledger write rolls back the entity write.
type PostingService struct {
	db *gorm.DB
}

func NewPostingService(db *gorm.DB) *PostingService { return &PostingService{db: db} }

// ChallanInput is a structurally valid challan creation request. Exactly one
// of VendorID/VendorName must be set (VendorID wins when both are).
type ChallanInput struct {
	DCNumber     string
	VendorID     string
	VendorName   string
	Date         time.Time
	TotalBirds   int
	TotalWeight  float64
	PurchaseRate float64
	Cages        []models.Cage
}

// InvoiceInput is a structurally valid invoice creation request.
type InvoiceInput struct {
	InvoiceNumber string
	CustomerID    string
	Date          time.Time
	Subtotal      float64
	Tax           float64
	Total         float64
	PaidAmount    float64
	PaymentMethod string
	Cages         []models.Cage
}

// SumLineAmounts computes the challan total from its line items. Totals are
// never trusted from the client.
func SumLineAmounts(cages []models.Cage) float64 {
	var total float64
	for _, c := range cages {
		total += c.Amount
	}
	return total
}

// InvoiceSettlement derives the due amount and settlement status from the
// invoice total and the amount paid so far:
//
//	paid = 0           -> pending
//	0 < paid < total   -> partial
//	paid >= total      -> paid (overpayment leaves a negative due amount)
func InvoiceSettlement(total, paid float64) (due float64, status string) {
	due = total - paid
	switch {
	case due <= 0:
		status = models.InvoiceStatusPaid
	case paid > 0:
		status = models.InvoiceStatusPartial
	default:
		status = models.InvoiceStatusPending
	}
	return due, status
}

// CreateChallan resolves the vendor (auto-creating one when only a name was
// given), recomputes the total from the line items and appends the challan
// plus its `purchase` ledger entry atomically.
func (s *PostingService) CreateChallan(in ChallanInput) (*models.DeliveryChallan, error) {
	var challan models.DeliveryChallan
	err := s.db.Transaction(func(tx *gorm.DB) error {
		vendorID, err := resolveVendor(tx, in.VendorID, in.VendorName)
		if err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.DeliveryChallan{}).Where("dc_number = ?", in.DCNumber).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ConflictError{Field: "dc_number"}
		}
		total := SumLineAmounts(in.Cages)
		challan = models.DeliveryChallan{
			DCNumber:     in.DCNumber,
			VendorID:     vendorID,
			Date:         in.Date,
			TotalBirds:   in.TotalBirds,
			TotalWeight:  in.TotalWeight,
			PurchaseRate: in.PurchaseRate,
			TotalAmount:  total,
			Cages:        in.Cages,
		}
		if err := tx.Create(&challan).Error; err != nil {
			return err
		}
		entry := models.LedgerEntry{
			RelatedID:   challan.ID,
			Type:        models.LedgerTypePurchase,
			VendorID:    &vendorID,
			Description: fmt.Sprintf("Purchase - DC %s", in.DCNumber),
			Amount:      total,
			Paid:        0,
			Balance:     total,
			Date:        in.Date,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	// Re-read so the caller gets the committed row, cages decoded.
	if err := s.db.First(&challan, "id = ?", challan.ID).Error; err != nil {
		return nil, err
	}
	return &challan, nil
}

// CreateInvoice derives due amount and status, then appends the invoice plus
// its `invoice` ledger entry atomically.
func (s *PostingService) CreateInvoice(in InvoiceInput) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Select("id").First(&customer, "id = ?", in.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ValidationError{Violations: validation.Violations{"customerId": "unknown_customer"}}
			}
			return err
		}
		var count int64
		if err := tx.Model(&models.Invoice{}).Where("invoice_number = ?", in.InvoiceNumber).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ConflictError{Field: "invoice_number"}
		}
		due, status := InvoiceSettlement(in.Total, in.PaidAmount)
		inv = models.Invoice{
			InvoiceNumber: in.InvoiceNumber,
			CustomerID:    in.CustomerID,
			Date:          in.Date,
			Subtotal:      in.Subtotal,
			Tax:           in.Tax,
			Total:         in.Total,
			PaidAmount:    in.PaidAmount,
			DueAmount:     due,
			PaymentMethod: in.PaymentMethod,
			Status:        status,
			Cages:         in.Cages,
		}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
		customerID := in.CustomerID
		entry := models.LedgerEntry{
			RelatedID:   inv.ID,
			Type:        models.LedgerTypeInvoice,
			CustomerID:  &customerID,
			Description: fmt.Sprintf("Invoice - %s", in.InvoiceNumber),
			Amount:      in.Total,
			Paid:        in.PaidAmount,
			Balance:     due,
			Date:        in.Date,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	if err := s.db.First(&inv, "id = ?", inv.ID).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// resolveVendor returns the id of an existing vendor, or creates one from
// the given name. Name matching is exact and case-sensitive; no fuzzy
// matching, changing that would alter observable behavior.
func resolveVendor(tx *gorm.DB, id, name string) (string, error) {
	if id != "" {
		var v models.Vendor
		if err := tx.Select("id").First(&v, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", &ValidationError{Violations: validation.Violations{"vendorId": "unknown_vendor"}}
			}
			return "", err
		}
		return v.ID, nil
	}
	if name == "" {
		return "", &ValidationError{Violations: validation.Violations{"vendorId": "vendor_id_or_name_required"}}
	}
	var v models.Vendor
	err := tx.First(&v, "name = ?", name).Error
	if err == nil {
		return v.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	v = models.Vendor{Name: name}
	if err := tx.Create(&v).Error; err != nil {
		return "", err
	}
	return v.ID, nil
}
