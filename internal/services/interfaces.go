package services

import (
	"context"
	"time"

	"spendsmart/internal/finance"
	"spendsmart/internal/models"
)

// ExpenseFilter holds optional filter parameters for listing expenses.
// Both date bounds are inclusive.
type ExpenseFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  *models.Category
}

// BudgetFilter holds optional filter parameters for listing budgets.
type BudgetFilter struct {
	Category *models.Category
	Period   *models.BudgetPeriod
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	ListExpenses(ctx context.Context, ownerID string, filter ExpenseFilter) ([]models.Expense, error)
	GetExpenseByID(ctx context.Context, ownerID, expenseID string) (*models.Expense, error)
	CreateExpense(ctx context.Context, ownerID string, fields models.ExpenseFields) (*models.Expense, error)
	UpdateExpense(ctx context.Context, ownerID, expenseID string, fields models.ExpenseFields) (*models.Expense, error)
	DeleteExpense(ctx context.Context, ownerID, expenseID string) error
	GetSummary(ctx context.Context, ownerID string, startDate, endDate *time.Time) (*finance.Summary, error)
	finance.ExpenseLookup
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	ListBudgets(ctx context.Context, ownerID string, filter BudgetFilter) ([]models.Budget, error)
	GetBudgetByID(ctx context.Context, ownerID, budgetID string) (*models.Budget, error)
	CreateBudget(ctx context.Context, ownerID string, fields models.BudgetFields) (*models.Budget, error)
	UpdateBudget(ctx context.Context, ownerID, budgetID string, fields models.BudgetFields) (*models.Budget, error)
	DeleteBudget(ctx context.Context, ownerID, budgetID string) error
	GetBudgetStatus(ctx context.Context, ownerID, budgetID string, rolling bool) (*finance.BudgetStatus, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Record(ctx context.Context, entry AuditEntry)
}
