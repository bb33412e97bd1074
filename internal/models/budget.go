package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod represents the recurrence of a budget limit
type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "Weekly"
	BudgetPeriodMonthly BudgetPeriod = "Monthly"
	BudgetPeriodYearly  BudgetPeriod = "Yearly"
)

// DefaultBudgetPeriod is applied when a budget is created without a period.
const DefaultBudgetPeriod = BudgetPeriodMonthly

// Valid reports whether p is one of the known periods.
func (p BudgetPeriod) Valid() bool {
	switch p {
	case BudgetPeriodWeekly, BudgetPeriodMonthly, BudgetPeriodYearly:
		return true
	}
	return false
}

// Budget is a recurring spending limit for one category
type Budget struct {
	Base
	OwnerID   string          `gorm:"not null;index" json:"ownerId"`
	Category  Category        `gorm:"not null" json:"category"`
	Amount    decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Period    BudgetPeriod    `gorm:"not null" json:"period"`
	StartDate time.Time       `gorm:"not null" json:"startDate"`
}
