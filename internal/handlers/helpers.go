package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "spendsmart/internal/errors"
	"spendsmart/internal/middleware"
	"spendsmart/internal/models"
	"spendsmart/internal/services"
	"spendsmart/internal/validator"
)

const dateOnlyLayout = "2006-01-02"

// getUserID extracts the authenticated owner ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.RespondWithError(c, err)
}

// recordAudit writes a successful mutation to the audit trail.
func recordAudit(c *gin.Context, audit services.AuditServicer, ownerID string, action models.AuditAction, resourceID string, changes map[string]any) {
	audit.Record(c.Request.Context(), services.AuditEntry{
		OwnerID:    ownerID,
		Action:     action,
		ResourceID: resourceID,
		IPAddress:  c.ClientIP(),
		Changes:    changes,
	})
}

// bindJSON decodes the request body into req. Binding rule violations become
// field-level validation errors; anything else is malformed input.
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		if verr := validator.FromBindingError(err); verr != nil {
			return apperrors.Invalid(verr)
		}
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Request body is not valid JSON for this resource")
	}
	return nil
}

// parseDate accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date, the
// latter meaning midnight UTC.
func parseDate(value string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(dateOnlyLayout, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// parseDateField parses an optional date from a body or query field.
func parseDateField(verr *validator.ValidationError, field string, value *string) *time.Time {
	if value == nil || *value == "" {
		return nil
	}
	t, ok := parseDate(*value)
	if !ok {
		verr.Add(field, "must be an RFC 3339 timestamp or a YYYY-MM-DD date")
		return nil
	}
	return &t
}

// queryValue returns a pointer to the query parameter, or nil when absent.
func queryValue(c *gin.Context, key string) *string {
	if v, ok := c.GetQuery(key); ok && v != "" {
		return &v
	}
	return nil
}

// parseBoolQuery parses an optional boolean query flag, defaulting to false.
func parseBoolQuery(verr *validator.ValidationError, c *gin.Context, key string) bool {
	v := queryValue(c, key)
	if v == nil {
		return false
	}
	b, err := strconv.ParseBool(*v)
	if err != nil {
		verr.Add(key, "must be true or false")
		return false
	}
	return b
}
