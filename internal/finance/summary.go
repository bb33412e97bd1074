package finance

import (
	"github.com/shopspring/decimal"

	"spendsmart/internal/models"
)

// Summary aggregates a set of expenses.
type Summary struct {
	Total      decimal.Decimal                     `json:"total"`
	Count      int                                 `json:"count"`
	ByCategory map[models.Category]decimal.Decimal `json:"byCategory"`
	Average    decimal.Decimal                     `json:"average"`
}

// Summarize totals expenses overall and per category. Only categories that
// occur in expenses appear in ByCategory; the map is never nil.
func Summarize(expenses []models.Expense) Summary {
	s := Summary{
		Total:      decimal.Zero,
		Count:      len(expenses),
		ByCategory: make(map[models.Category]decimal.Decimal),
		Average:    decimal.Zero,
	}

	for _, e := range expenses {
		s.Total = s.Total.Add(e.Amount)
		s.ByCategory[e.Category] = s.ByCategory[e.Category].Add(e.Amount)
	}

	if s.Count > 0 {
		s.Average = s.Total.Div(decimal.NewFromInt(int64(s.Count)))
	}
	return s
}
