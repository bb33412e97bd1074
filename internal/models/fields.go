package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseFields carries expense input. A nil field was not supplied.
type ExpenseFields struct {
	Amount      *decimal.Decimal
	Description *string
	Category    *Category
	Date        *time.Time
}

// BudgetFields carries budget input. A nil field was not supplied.
type BudgetFields struct {
	Category  *Category
	Amount    *decimal.Decimal
	Period    *BudgetPeriod
	StartDate *time.Time
}
