package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice settlement states. Status is always derived from the relation
// between total and paid_amount, never set independently.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPartial = "partial"
	InvoiceStatusPaid    = "paid"
)

// Invoice records a sale to a customer, itemized by cage like a challan.
type Invoice struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	InvoiceNumber string    `gorm:"uniqueIndex;not null" json:"invoice_number"`
	CustomerID    string    `gorm:"not null;index;size:36" json:"customer_id"`
	Date          time.Time `gorm:"not null" json:"date"`
	Subtotal      float64   `gorm:"not null" json:"subtotal"`
	Tax           float64   `gorm:"not null;default:0" json:"tax"`
	Total         float64   `gorm:"not null" json:"total"`
	PaidAmount    float64   `gorm:"not null;default:0" json:"paid_amount"`
	DueAmount     float64   `gorm:"not null" json:"due_amount"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `gorm:"not null;default:'pending'" json:"status"`
	Cages         CageList  `gorm:"type:text;not null" json:"cages"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (i *Invoice) BeforeCreate(_ *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
