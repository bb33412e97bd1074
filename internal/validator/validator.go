// Package validator holds the input rules for expenses and budgets, both as
// explicit validation functions used by the services and as custom
// validators for Gin's binding engine.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"spendsmart/internal/models"
)

// FieldError describes why a single input field was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every rejected field of one input.
type ValidationError struct {
	Fields []FieldError
}

// Error joins the field errors as "field: message; field: message".
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return strings.Join(parts, "; ")
}

// Add records a rejected field.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Err returns e as an error, or nil when no field was rejected.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Field returns the message recorded for field, if any.
func (e *ValidationError) Field(field string) (string, bool) {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message, true
		}
	}
	return "", false
}

// Invalid builds a single-field ValidationError.
func Invalid(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

const (
	msgRequired    = "is required"
	msgNonNegative = "must be greater than or equal to 0"
	msgNotBlank    = "must not be empty"
)

func categoryMessage() string {
	labels := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		labels[i] = string(c)
	}
	return "must be one of " + strings.Join(labels, ", ")
}

func periodMessage() string {
	return fmt.Sprintf("must be one of %s, %s, %s",
		models.BudgetPeriodWeekly, models.BudgetPeriodMonthly, models.BudgetPeriodYearly)
}

// ValidateExpenseFields checks expense input. With partial set, absent
// fields are allowed (updates); otherwise amount and description are required.
func ValidateExpenseFields(f models.ExpenseFields, partial bool) error {
	var v ValidationError

	switch {
	case f.Amount == nil && !partial:
		v.Add("amount", msgRequired)
	case f.Amount != nil && f.Amount.IsNegative():
		v.Add("amount", msgNonNegative)
	}

	switch {
	case f.Description == nil && !partial:
		v.Add("description", msgRequired)
	case f.Description != nil && strings.TrimSpace(*f.Description) == "":
		v.Add("description", msgNotBlank)
	}

	if f.Category != nil && !f.Category.Valid() {
		v.Add("category", categoryMessage())
	}

	return v.Err()
}

// ValidateBudgetFields checks budget input. With partial set, absent fields
// are allowed (updates); otherwise amount is required.
func ValidateBudgetFields(f models.BudgetFields, partial bool) error {
	var v ValidationError

	switch {
	case f.Amount == nil && !partial:
		v.Add("amount", msgRequired)
	case f.Amount != nil && f.Amount.IsNegative():
		v.Add("amount", msgNonNegative)
	}

	if f.Category != nil && !f.Category.Valid() {
		v.Add("category", categoryMessage())
	}
	if f.Period != nil && !f.Period.Valid() {
		v.Add("period", periodMessage())
	}

	return v.Err()
}

var registerOnce sync.Once

// Register registers all custom validators with the Gin binding engine and
// makes validation errors report JSON field names. Safe to call repeatedly.
func Register() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(jsonFieldName)
			_ = v.RegisterValidation("category", validateCategory)
			_ = v.RegisterValidation("budget_period", validateBudgetPeriod)
		}
	})
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

func validateCategory(fl validator.FieldLevel) bool {
	return models.Category(fl.Field().String()).Valid()
}

func validateBudgetPeriod(fl validator.FieldLevel) bool {
	return models.BudgetPeriod(fl.Field().String()).Valid()
}

// FromBindingError converts binding validation failures into a
// ValidationError. It returns nil when err is not a validation failure
// (malformed JSON, wrong types).
func FromBindingError(err error) *ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "category":
			out.Add(fe.Field(), categoryMessage())
		case "budget_period":
			out.Add(fe.Field(), periodMessage())
		case "required":
			out.Add(fe.Field(), msgRequired)
		default:
			out.Add(fe.Field(), fmt.Sprintf("failed on the '%s' rule", fe.Tag()))
		}
	}
	return out
}
