package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cage is one itemized line of a delivery challan: birds sold by the cage
// with quantity, weight, rate and the computed line amount.
type Cage struct {
	CageNumber string  `json:"cageNumber"`
	Birds      int     `json:"birds"`
	Weight     float64 `json:"weight"`
	Rate       float64 `json:"rate"`
	Amount     float64 `json:"amount"`
}

// CageList is stored as a single JSON text column. Ordering of the line
// items is preserved through the round trip.
type CageList []Cage

func (l CageList) Value() (driver.Value, error) {
	if l == nil {
		l = CageList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *CageList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = CageList{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan cages from %T", src)
	}
}

// DeliveryChallan records a purchase from a vendor. TotalAmount is always
// recomputed server-side as the sum of the cage line amounts.
type DeliveryChallan struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	DCNumber     string    `gorm:"column:dc_number;uniqueIndex;not null" json:"dc_number"`
	VendorID     string    `gorm:"not null;index;size:36" json:"vendor_id"`
	Date         time.Time `gorm:"not null" json:"date"`
	TotalBirds   int       `gorm:"not null" json:"total_birds"`
	TotalWeight  float64   `gorm:"not null" json:"total_weight"`
	PurchaseRate float64   `gorm:"not null" json:"purchase_rate"`
	TotalAmount  float64   `gorm:"not null" json:"total_amount"`
	Cages        CageList  `gorm:"type:text;not null" json:"cages"`
	Status       string    `gorm:"not null;default:'active'" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (d *DeliveryChallan) BeforeCreate(_ *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Status == "" {
		d.Status = "active"
	}
	return nil
}
