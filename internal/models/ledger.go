package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ledger entry types.
const (
	LedgerTypePurchase = "purchase"
	LedgerTypeInvoice  = "invoice"
	LedgerTypePayment  = "payment"
)

// LedgerEntry is the derived bookkeeping row appended exactly once when a
// challan or invoice is created. Exactly one of CustomerID/VendorID is set.
// The row is immutable except for the payment patch, which sets Paid and
// recomputes Balance = Amount - Paid.
type LedgerEntry struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	RelatedID   string    `gorm:"not null;index;size:36" json:"related_id"`
	Type        string    `gorm:"not null" json:"type"`
	CustomerID  *string   `gorm:"index;size:36" json:"customer_id"`
	VendorID    *string   `gorm:"index;size:36" json:"vendor_id"`
	Description string    `gorm:"not null" json:"description"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Paid        float64   `gorm:"not null;default:0" json:"paid"`
	Balance     float64   `gorm:"not null" json:"balance"`
	Date        time.Time `gorm:"not null" json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e *LedgerEntry) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
