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

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// CreateBudgetRequest represents the request payload for creating a budget.
type CreateBudgetRequest struct {
	Category  *models.Category     `json:"category" binding:"omitempty,category"`
	Amount    *decimal.Decimal     `json:"amount" binding:"required" swaggertype:"string" example:"500"`
	Period    *models.BudgetPeriod `json:"period" binding:"omitempty,budget_period"`
	StartDate *string              `json:"startDate" example:"2025-01-01"`
}

// UpdateBudgetRequest represents the request payload for updating a budget.
// Omitted fields keep their stored value.
type UpdateBudgetRequest struct {
	Category  *models.Category     `json:"category" binding:"omitempty,category"`
	Amount    *decimal.Decimal     `json:"amount" swaggertype:"string" example:"500"`
	Period    *models.BudgetPeriod `json:"period" binding:"omitempty,budget_period"`
	StartDate *string              `json:"startDate" example:"2025-01-01"`
}

func (r UpdateBudgetRequest) fields() (models.BudgetFields, error) {
	var verr validator.ValidationError
	f := models.BudgetFields{
		Category:  r.Category,
		Amount:    r.Amount,
		Period:    r.Period,
		StartDate: parseDateField(&verr, "startDate", r.StartDate),
	}
	if err := verr.Err(); err != nil {
		return f, apperrors.Invalid(err)
	}
	return f, nil
}

func budgetChanges(f models.BudgetFields) map[string]any {
	changes := make(map[string]any)
	if f.Category != nil {
		changes["category"] = *f.Category
	}
	if f.Amount != nil {
		changes["amount"] = f.Amount.String()
	}
	if f.Period != nil {
		changes["period"] = *f.Period
	}
	if f.StartDate != nil {
		changes["startDate"] = f.StartDate
	}
	return changes
}

// CreateBudget handles the creation of a new budget.
// @Summary     Create a budget
// @Description Create a spending limit for a category. Category defaults to Other, period to Monthly and start date to now.
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBudgetRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	fields, err := UpdateBudgetRequest(req).fields()
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), userID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, userID, models.AuditCreateBudget, budget.ID, budgetChanges(fields))

	c.JSON(http.StatusCreated, budget)
}

// GetBudgets handles listing budgets for the authenticated user.
// @Summary     List budgets
// @Description List the authenticated user's budgets, newest first
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       category query string false "Filter by category"
// @Param       period   query string false "Filter by period (Weekly/Monthly/Yearly)"
// @Success     200 {array}  models.Budget "Budgets"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var verr validator.ValidationError
	var filter services.BudgetFilter
	if v := queryValue(c, "category"); v != nil {
		category := models.Category(*v)
		if !category.Valid() {
			verr.Add("category", "is not a known category")
		}
		filter.Category = &category
	}
	if v := queryValue(c, "period"); v != nil {
		period := models.BudgetPeriod(*v)
		if !period.Valid() {
			verr.Add("period", "must be Weekly, Monthly or Yearly")
		}
		filter.Period = &period
	}
	if err := verr.Err(); err != nil {
		respondWithError(c, apperrors.Invalid(err))
		return
	}

	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, budgets)
}

// GetBudget handles retrieving a specific budget.
// @Summary     Get budget by ID
// @Description Get one of the authenticated user's budgets
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Budget ID"
// @Success     200 {object} models.Budget "Budget details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudgetByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, budget)
}

// UpdateBudget handles updating an existing budget.
// @Summary     Update budget
// @Description Update the supplied fields of a budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Budget ID"
// @Param       request body UpdateBudgetRequest true "Fields to change"
// @Success     200 {object} models.Budget "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	fields, err := req.fields()
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), userID, c.Param("id"), fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, userID, models.AuditUpdateBudget, budget.ID, budgetChanges(fields))

	c.JSON(http.StatusOK, budget)
}

// DeleteBudget handles deleting a budget.
// @Summary     Delete budget
// @Description Permanently delete a budget. Expenses are not affected.
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Budget ID"
// @Success     200 {object} MessageResponse "Budget deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID := c.Param("id")
	if err := h.budgetService.DeleteBudget(c.Request.Context(), userID, budgetID); err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, userID, models.AuditDeleteBudget, budgetID, nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Budget deleted successfully"})
}

// GetBudgetStatus handles computing spending against a budget.
// @Summary     Get budget status
// @Description Spending, remaining amount and usage of a budget over its period window. The window is anchored at the start date unless rolling=true selects the period containing now.
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id      path  string true  "Budget ID"
// @Param       rolling query bool   false "Use the recurring window containing now"
// @Success     200 {object} finance.BudgetStatus "Budget status"
// @Failure     400 {object} ErrorResponse "Invalid query"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/status [get]
func (h *BudgetHandler) GetBudgetStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var verr validator.ValidationError
	rolling := parseBoolQuery(&verr, c, "rolling")
	if err := verr.Err(); err != nil {
		respondWithError(c, apperrors.Invalid(err))
		return
	}

	status, err := h.budgetService.GetBudgetStatus(c.Request.Context(), userID, c.Param("id"), rolling)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
