package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single spending record owned by one user
type Expense struct {
	Base
	OwnerID     string          `gorm:"not null;index:idx_expenses_owner_date,priority:1" json:"ownerId"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Description string          `gorm:"not null" json:"description"`
	Category    Category        `gorm:"not null" json:"category"`
	Date        time.Time       `gorm:"not null;index:idx_expenses_owner_date,priority:2" json:"date"`
}
