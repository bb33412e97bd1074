package middleware

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "spendsmart/internal/errors"
	"spendsmart/internal/validator"
)

func setupErrorRouter(err error) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/test", func(c *gin.Context) {
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "app_error",
			err:         apperrors.ErrBudgetNotFound,
			wantStatus:  http.StatusNotFound,
			wantCode:    "BUDGET_NOT_FOUND",
			wantMessage: "Budget not found",
		},
		{
			name:        "internal_details_hidden",
			err:         apperrors.WithMessage(apperrors.ErrInternalServer, "pq: relation does not exist"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: "An internal error occurred",
		},
		{
			name:        "plain_error",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: "An internal error occurred",
		},
		{
			name:        "store_unavailable",
			err:         apperrors.Wrap(apperrors.ErrStoreUnavailable, errors.New("dial tcp: refused")),
			wantStatus:  http.StatusServiceUnavailable,
			wantCode:    "STORE_UNAVAILABLE",
			wantMessage: "Database is unreachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(setupErrorRouter(tt.err), http.MethodGet, "/test", nil)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			errObj := parseBody(t, rec)["error"].(map[string]interface{})
			if errObj["code"] != tt.wantCode {
				t.Errorf("code = %v, want %s", errObj["code"], tt.wantCode)
			}
			if errObj["message"] != tt.wantMessage {
				t.Errorf("message = %v, want %s", errObj["message"], tt.wantMessage)
			}
		})
	}
}

func TestErrorHandler_ValidationFields(t *testing.T) {
	verr := validator.Invalid("amount", "must be greater than or equal to 0")
	rec := doRequest(setupErrorRouter(apperrors.Invalid(verr)), http.MethodGet, "/test", nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	errObj := parseBody(t, rec)["error"].(map[string]interface{})
	if !strings.Contains(errObj["message"].(string), "amount") {
		t.Errorf("expected message to name the field, got %v", errObj["message"])
	}
	fields, ok := errObj["fields"].([]interface{})
	if !ok || len(fields) != 1 {
		t.Fatalf("expected one field error, got %v", errObj["fields"])
	}
	if field := fields[0].(map[string]interface{})["field"]; field != "amount" {
		t.Errorf("field = %v, want amount", field)
	}
}

func TestErrorHandler_NoError(t *testing.T) {
	rec := doRequest(setupErrorRouter(nil), http.MethodGet, "/test", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
