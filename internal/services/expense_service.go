package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "spendsmart/internal/errors"
	"spendsmart/internal/finance"
	"spendsmart/internal/models"
	"spendsmart/internal/validator"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db, now: time.Now}
}

// validID reports whether id can name a stored record. Anything else is
// treated as a lookup miss.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// ListExpenses returns the owner's expenses, newest first.
func (s *expenseService) ListExpenses(ctx context.Context, ownerID string, filter ExpenseFilter) ([]models.Expense, error) {
	query := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if filter.StartDate != nil {
		query = query.Where("date >= ?", filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", filter.EndDate.UTC())
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	expenses := []models.Expense{}
	if err := query.Order("date DESC").Order("created_at DESC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// GetExpenseByID returns an expense by ID if it belongs to the owner.
func (s *expenseService) GetExpenseByID(ctx context.Context, ownerID, expenseID string) (*models.Expense, error) {
	if !validID(expenseID) {
		return nil, apperrors.ErrExpenseNotFound
	}

	var expense models.Expense
	if err := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", expenseID, ownerID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// CreateExpense validates and stores a new expense. Category defaults to
// Other and date to the current instant.
func (s *expenseService) CreateExpense(ctx context.Context, ownerID string, fields models.ExpenseFields) (*models.Expense, error) {
	if err := validator.ValidateExpenseFields(fields, false); err != nil {
		return nil, apperrors.Invalid(err)
	}

	expense := &models.Expense{
		OwnerID:     ownerID,
		Amount:      *fields.Amount,
		Description: strings.TrimSpace(*fields.Description),
		Category:    models.DefaultCategory,
		Date:        s.now().UTC(),
	}
	if fields.Category != nil {
		expense.Category = *fields.Category
	}
	if fields.Date != nil {
		expense.Date = fields.Date.UTC()
	}

	if err := s.db.WithContext(ctx).Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// UpdateExpense applies the supplied fields to an existing expense.
// Absent fields keep their stored value.
func (s *expenseService) UpdateExpense(ctx context.Context, ownerID, expenseID string, fields models.ExpenseFields) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(ctx, ownerID, expenseID)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateExpenseFields(fields, true); err != nil {
		return nil, apperrors.Invalid(err)
	}

	if fields.Amount != nil {
		expense.Amount = *fields.Amount
	}
	if fields.Description != nil {
		expense.Description = strings.TrimSpace(*fields.Description)
	}
	if fields.Category != nil {
		expense.Category = *fields.Category
	}
	if fields.Date != nil {
		expense.Date = fields.Date.UTC()
	}

	if err := s.db.WithContext(ctx).Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// DeleteExpense permanently removes an expense.
func (s *expenseService) DeleteExpense(ctx context.Context, ownerID, expenseID string) error {
	expense, err := s.GetExpenseByID(ctx, ownerID, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetSummary aggregates the owner's expenses within the optional inclusive
// date range.
func (s *expenseService) GetSummary(ctx context.Context, ownerID string, startDate, endDate *time.Time) (*finance.Summary, error) {
	expenses, err := s.ListExpenses(ctx, ownerID, ExpenseFilter{StartDate: startDate, EndDate: endDate})
	if err != nil {
		return nil, err
	}
	summary := finance.Summarize(expenses)
	return &summary, nil
}

// ExpensesInWindow returns the owner's expenses of one category whose date
// falls inside window, bounds included.
func (s *expenseService) ExpensesInWindow(ctx context.Context, ownerID string, category models.Category, window finance.Window) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND category = ? AND date >= ? AND date <= ?",
			ownerID, category, window.Start.UTC(), window.End.UTC()).
		Find(&expenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}
