package services

import (
	"errors"

	"poultry-books/internal/models"
	"poultry-books/internal/validation"

	"gorm.io/gorm"
)

// LedgerService applies payments against existing ledger entries. Entries
// are otherwise immutable.
type LedgerService struct {
	db *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService { return &LedgerService{db: db} }

// ApplyPayment sets the paid amount on an entry and recomputes
// balance = amount - paid, persisting both.
func (s *LedgerService) ApplyPayment(id string, paid float64) (*models.LedgerEntry, error) {
	if paid < 0 {
		return nil, &ValidationError{Violations: validation.Violations{"paid": "must_not_be_negative"}}
	}
	var entry models.LedgerEntry
	if err := s.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	entry.Paid = paid
	entry.Balance = entry.Amount - paid
	if err := s.db.Model(&entry).Updates(map[string]any{"paid": entry.Paid, "balance": entry.Balance}).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}
