package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "spendsmart/internal/errors"
	"spendsmart/internal/finance"
	"spendsmart/internal/models"
	"spendsmart/internal/validator"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db       *gorm.DB
	expenses finance.ExpenseLookup
	now      func() time.Time
}

// NewBudgetService creates a new BudgetServicer. Status queries read
// spending through expenses.
func NewBudgetService(db *gorm.DB, expenses finance.ExpenseLookup) BudgetServicer {
	return &budgetService{db: db, expenses: expenses, now: time.Now}
}

// ListBudgets returns the owner's budgets, newest first.
func (s *budgetService) ListBudgets(ctx context.Context, ownerID string, filter BudgetFilter) ([]models.Budget, error) {
	query := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Period != nil {
		query = query.Where("period = ?", *filter.Period)
	}

	budgets := []models.Budget{}
	if err := query.Order("created_at DESC").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// GetBudgetByID returns a budget by ID if it belongs to the owner.
func (s *budgetService) GetBudgetByID(ctx context.Context, ownerID, budgetID string) (*models.Budget, error) {
	if !validID(budgetID) {
		return nil, apperrors.ErrBudgetNotFound
	}

	var budget models.Budget
	if err := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", budgetID, ownerID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// CreateBudget validates and stores a new budget. Category defaults to
// Other, period to Monthly and the start date to the current instant.
func (s *budgetService) CreateBudget(ctx context.Context, ownerID string, fields models.BudgetFields) (*models.Budget, error) {
	if err := validator.ValidateBudgetFields(fields, false); err != nil {
		return nil, apperrors.Invalid(err)
	}

	budget := &models.Budget{
		OwnerID:   ownerID,
		Category:  models.DefaultCategory,
		Amount:    *fields.Amount,
		Period:    models.DefaultBudgetPeriod,
		StartDate: s.now().UTC(),
	}
	if fields.Category != nil {
		budget.Category = *fields.Category
	}
	if fields.Period != nil {
		budget.Period = *fields.Period
	}
	if fields.StartDate != nil {
		budget.StartDate = fields.StartDate.UTC()
	}

	if err := s.db.WithContext(ctx).Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// UpdateBudget applies the supplied fields to an existing budget.
// Absent fields keep their stored value.
func (s *budgetService) UpdateBudget(ctx context.Context, ownerID, budgetID string, fields models.BudgetFields) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(ctx, ownerID, budgetID)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateBudgetFields(fields, true); err != nil {
		return nil, apperrors.Invalid(err)
	}

	if fields.Category != nil {
		budget.Category = *fields.Category
	}
	if fields.Amount != nil {
		budget.Amount = *fields.Amount
	}
	if fields.Period != nil {
		budget.Period = *fields.Period
	}
	if fields.StartDate != nil {
		budget.StartDate = fields.StartDate.UTC()
	}

	if err := s.db.WithContext(ctx).Save(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// DeleteBudget permanently removes a budget. Expenses are left untouched.
func (s *budgetService) DeleteBudget(ctx context.Context, ownerID, budgetID string) error {
	budget, err := s.GetBudgetByID(ctx, ownerID, budgetID)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetBudgetStatus computes spending against a budget. The window is the one
// anchored at the start date unless rolling asks for the period containing
// the current instant.
func (s *budgetService) GetBudgetStatus(ctx context.Context, ownerID, budgetID string, rolling bool) (*finance.BudgetStatus, error) {
	budget, err := s.GetBudgetByID(ctx, ownerID, budgetID)
	if err != nil {
		return nil, err
	}

	var status *finance.BudgetStatus
	if rolling {
		status, err = finance.ComputeCurrentStatus(ctx, *budget, s.expenses, s.now())
	} else {
		status, err = finance.ComputeStatus(ctx, *budget, s.expenses)
	}
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return status, nil
}
