package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"spendsmart/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewOwnerID returns an owner id no other fixture uses.
func NewOwnerID() string {
	return fmt.Sprintf("user-%d", nextID())
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestExpense creates an expense with a unique description.
func CreateTestExpense(t *testing.T, db *gorm.DB, ownerID string, amount string, category models.Category, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		OwnerID:     ownerID,
		Amount:      decimal.RequireFromString(amount),
		Description: fmt.Sprintf("Test Expense %d", nextID()),
		Category:    category,
		Date:        date.UTC(),
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestBudget creates a budget for the given category and period.
func CreateTestBudget(t *testing.T, db *gorm.DB, ownerID string, category models.Category, amount string, period models.BudgetPeriod, start time.Time) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		OwnerID:   ownerID,
		Category:  category,
		Amount:    decimal.RequireFromString(amount),
		Period:    period,
		StartDate: start.UTC(),
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
