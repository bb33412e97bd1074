package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"spendsmart/internal/logger"
)

const (
	requestIDKey    = "requestID"
	requestIDHeader = "X-Request-ID"
)

// RequestID returns the id RequestLogging assigned to the current request.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogging tags every request with an X-Request-ID and writes one
// access log line per request once the handler chain has finished. A UUID
// sent by the caller is reused; anything else is replaced.
//
// The level follows the status: 5xx are errors, 4xx warnings, the rest info.
// Health probes are logged at debug.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		fields := []interface{}{
			"request_id", requestID,
			"method", c.Request.Method,
			"route", route,
			"path", c.Request.URL.Path,
			"status", status,
			"bytes", c.Writer.Size(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if owner := c.GetString(UserIDKey); owner != "" {
			fields = append(fields, "owner_id", owner)
		}

		log := logger.Get()
		switch {
		case status >= http.StatusInternalServerError:
			log.Errorw("request", fields...)
		case status >= http.StatusBadRequest:
			log.Warnw("request", fields...)
		case route == "/api/health":
			log.Debugw("request", fields...)
		default:
			log.Infow("request", fields...)
		}
	}
}
