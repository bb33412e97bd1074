package finance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"spendsmart/internal/models"
)

var hundred = decimal.NewFromInt(100)

// ExpenseLookup fetches an owner's expenses of one category inside a window.
type ExpenseLookup interface {
	ExpensesInWindow(ctx context.Context, ownerID string, category models.Category, window Window) ([]models.Expense, error)
}

// BudgetStatus is the spending position of a budget over one window.
type BudgetStatus struct {
	Budget       models.Budget   `json:"budget"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	Percentage   float64         `json:"percentage"`
	IsOverBudget bool            `json:"isOverBudget"`
	Window
}

// ComputeStatus evaluates a budget over the window anchored at its start date.
func ComputeStatus(ctx context.Context, budget models.Budget, lookup ExpenseLookup) (*BudgetStatus, error) {
	return computeIn(ctx, budget, PeriodWindow(budget.StartDate, budget.Period), lookup)
}

// ComputeCurrentStatus evaluates a budget over the recurring window that
// contains now.
func ComputeCurrentStatus(ctx context.Context, budget models.Budget, lookup ExpenseLookup, now time.Time) (*BudgetStatus, error) {
	return computeIn(ctx, budget, CurrentWindow(budget.StartDate, budget.Period, now), lookup)
}

func computeIn(ctx context.Context, budget models.Budget, window Window, lookup ExpenseLookup) (*BudgetStatus, error) {
	expenses, err := lookup.ExpensesInWindow(ctx, budget.OwnerID, budget.Category, window)
	if err != nil {
		return nil, err
	}
	status := NewStatus(budget, window, expenses)
	return &status, nil
}

// NewStatus aggregates expenses against a budget. Expenses outside the
// window or belonging to another owner or category are ignored.
//
// A zero limit reports 0% with nothing spent and 100% otherwise.
func NewStatus(budget models.Budget, window Window, expenses []models.Expense) BudgetStatus {
	spent := decimal.Zero
	for _, e := range expenses {
		if e.OwnerID != budget.OwnerID || e.Category != budget.Category || !window.Contains(e.Date) {
			continue
		}
		spent = spent.Add(e.Amount)
	}

	return BudgetStatus{
		Budget:       budget,
		Spent:        spent,
		Remaining:    budget.Amount.Sub(spent),
		Percentage:   percentUsed(spent, budget.Amount),
		IsOverBudget: spent.GreaterThan(budget.Amount),
		Window:       window,
	}
}

func percentUsed(spent, limit decimal.Decimal) float64 {
	if limit.IsZero() {
		if spent.IsPositive() {
			return 100
		}
		return 0
	}
	pct := spent.Div(limit).Mul(hundred)
	if pct.GreaterThan(hundred) {
		pct = hundred
	}
	return pct.InexactFloat64()
}
