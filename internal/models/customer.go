package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer entity. Balance is a running signed total maintained by ledger
// postings and is never written directly by API callers.
type Customer struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	GSTNumber string    `gorm:"column:gst_number" json:"gst_number"`
	Balance   float64   `gorm:"not null;default:0" json:"balance"`
	Status    string    `gorm:"not null;default:'active'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Customer) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = "active"
	}
	return nil
}
