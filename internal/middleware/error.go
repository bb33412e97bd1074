package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendsmart/internal/errors"
	"spendsmart/internal/logger"
	"spendsmart/internal/validator"
)

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into consistent JSON error responses.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		RespondWithError(c, c.Errors.Last().Err)
	}
}

// RespondWithError writes the JSON error body for err. AppErrors keep their
// code and status; validation failures also list the rejected fields. Server
// side failures are logged and answered with a generic message so internal
// details never reach the client.
func RespondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	body := gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		fields := []interface{}{
			"request_id", RequestID(c),
			"code", appErr.Code,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		}
		if appErr.Internal != nil {
			fields = append(fields, "internal", appErr.Internal.Error())
		}
		logger.Get().Errorw("request failed", fields...)

		if appErr.Code == apperrors.ErrInternalServer.Code {
			body["message"] = apperrors.ErrInternalServer.Message
		}
	}

	var verr *validator.ValidationError
	if errors.As(appErr.Internal, &verr) && len(verr.Fields) > 0 {
		body["fields"] = verr.Fields
	}

	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{"error": body})
}
