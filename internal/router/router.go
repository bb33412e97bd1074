// Package router assembles the HTTP surface of the API.
package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"spendsmart/internal/config"
	_ "spendsmart/internal/docs" // Import swagger docs
	apperrors "spendsmart/internal/errors"
	"spendsmart/internal/handlers"
	"spendsmart/internal/middleware"
	"spendsmart/internal/services"
	"spendsmart/internal/validator"
)

// Deps are the collaborators the routes are served by.
type Deps struct {
	Expenses services.ExpenseServicer
	Budgets  services.BudgetServicer
	Audit    services.AuditServicer
	Store    handlers.Pinger

	AllowedOrigins []string
	JWTSecret      string
	JWTIssuer      string
}

// Build wires the services over db and returns the engine cmd/api serves.
func Build(cfg *config.Config, db *gorm.DB, store handlers.Pinger) *gin.Engine {
	expenseService := services.NewExpenseService(db)

	return New(Deps{
		Expenses:       expenseService,
		Budgets:        services.NewBudgetService(db, expenseService),
		Audit:          services.NewAuditService(db),
		Store:          store,
		AllowedOrigins: cfg.AllowedOrigins,
		JWTSecret:      cfg.JWTSecret,
		JWTIssuer:      cfg.JWTIssuer,
	})
}

// New builds the Gin engine with every route under /api.
func New(d Deps) *gin.Engine {
	// Request bodies bind with the category and budget_period rules.
	validator.Register()

	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		middleware.RespondWithError(c, fmt.Errorf("panic: %v", recovered))
	}))
	r.Use(middleware.RequestLogging())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORS(d.AllowedOrigins))

	r.NoRoute(func(c *gin.Context) {
		middleware.RespondWithError(c, apperrors.ErrNotFound)
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	expenseHandler := handlers.NewExpenseHandler(d.Expenses, d.Audit)
	budgetHandler := handlers.NewBudgetHandler(d.Budgets, d.Audit)
	healthHandler := handlers.NewHealthHandler(d.Store)

	api := r.Group("/api")
	api.GET("/health", healthHandler.Health)

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(d.JWTSecret, d.JWTIssuer))

	expenses := protected.Group("/expenses")
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("/stats/summary", expenseHandler.GetSummary)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	budgets := protected.Group("/budgets")
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)
	budgets.GET("/:id/status", budgetHandler.GetBudgetStatus)

	return r
}
