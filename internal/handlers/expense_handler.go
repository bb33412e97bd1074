package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "spendsmart/internal/errors"
	"spendsmart/internal/models"
	"spendsmart/internal/services"
	"spendsmart/internal/validator"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	auditService   services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, auditService: auditService}
}

// CreateExpenseRequest represents the request payload for creating an expense.
type CreateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"required" swaggertype:"string" example:"12.50"`
	Description *string          `json:"description" binding:"required"`
	Category    *models.Category `json:"category" binding:"omitempty,category"`
	Date        *string          `json:"date" example:"2025-03-04"`
}

// UpdateExpenseRequest represents the request payload for updating an expense.
// Omitted fields keep their stored value.
type UpdateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount" swaggertype:"string" example:"12.50"`
	Description *string          `json:"description"`
	Category    *models.Category `json:"category" binding:"omitempty,category"`
	Date        *string          `json:"date" example:"2025-03-04"`
}

func (r UpdateExpenseRequest) fields() (models.ExpenseFields, error) {
	var verr validator.ValidationError
	f := models.ExpenseFields{
		Amount:      r.Amount,
		Description: r.Description,
		Category:    r.Category,
		Date:        parseDateField(&verr, "date", r.Date),
	}
	if err := verr.Err(); err != nil {
		return f, apperrors.Invalid(err)
	}
	return f, nil
}

func expenseChanges(f models.ExpenseFields) map[string]any {
	changes := make(map[string]any)
	if f.Amount != nil {
		changes["amount"] = f.Amount.String()
	}
	if f.Description != nil {
		changes["description"] = *f.Description
	}
	if f.Category != nil {
		changes["category"] = *f.Category
	}
	if f.Date != nil {
		changes["date"] = f.Date
	}
	return changes
}

// GetExpenses handles listing expenses for the authenticated user.
// @Summary     List expenses
// @Description List the authenticated user's expenses, newest first
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       startDate query string false "Earliest date, inclusive (RFC 3339 or YYYY-MM-DD)"
// @Param       endDate   query string false "Latest date, inclusive (RFC 3339 or YYYY-MM-DD)"
// @Param       category  query string false "Filter by category"
// @Success     200 {array}  models.Expense "Expenses"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var verr validator.ValidationError
	filter := services.ExpenseFilter{
		StartDate: parseDateField(&verr, "startDate", queryValue(c, "startDate")),
		EndDate:   parseDateField(&verr, "endDate", queryValue(c, "endDate")),
	}
	if v := queryValue(c, "category"); v != nil {
		category := models.Category(*v)
		if !category.Valid() {
			verr.Add("category", "is not a known category")
		}
		filter.Category = &category
	}
	if err := verr.Err(); err != nil {
		respondWithError(c, apperrors.Invalid(err))
		return
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// GetExpense handles retrieving a specific expense.
// @Summary     Get expense by ID
// @Description Get one of the authenticated user's expenses
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} models.Expense "Expense"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// CreateExpense handles the creation of a new expense.
// @Summary     Create an expense
// @Description Record a new expense. Category defaults to Other and date to now.
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} models.Expense "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	fields, err := UpdateExpenseRequest(req).fields()
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), userID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, userID, models.AuditCreateExpense, expense.ID, expenseChanges(fields))

	c.JSON(http.StatusCreated, expense)
}

// UpdateExpense handles updating an existing expense.
// @Summary     Update expense
// @Description Update the supplied fields of an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Fields to change"
// @Success     200 {object} models.Expense "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	fields, err := req.fields()
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), userID, c.Param("id"), fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, userID, models.AuditUpdateExpense, expense.ID, expenseChanges(fields))

	c.JSON(http.StatusOK, expense)
}

// DeleteExpense handles deleting an expense.
// @Summary     Delete expense
// @Description Permanently delete an expense
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID := c.Param("id")
	if err := h.expenseService.DeleteExpense(c.Request.Context(), userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, userID, models.AuditDeleteExpense, expenseID, nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Expense deleted successfully"})
}

// GetSummary handles aggregating the user's expenses.
// @Summary     Expense summary
// @Description Total, count, per-category totals and average of the user's expenses
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       startDate query string false "Earliest date, inclusive (RFC 3339 or YYYY-MM-DD)"
// @Param       endDate   query string false "Latest date, inclusive (RFC 3339 or YYYY-MM-DD)"
// @Success     200 {object} finance.Summary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/stats/summary [get]
func (h *ExpenseHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var verr validator.ValidationError
	startDate := parseDateField(&verr, "startDate", queryValue(c, "startDate"))
	endDate := parseDateField(&verr, "endDate", queryValue(c, "endDate"))
	if err := verr.Err(); err != nil {
		respondWithError(c, apperrors.Invalid(err))
		return
	}

	summary, err := h.expenseService.GetSummary(c.Request.Context(), userID, startDate, endDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
