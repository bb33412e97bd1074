package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"

	apperrors "spendsmart/internal/errors"
)

// CORS allows browser requests from the listed origins. Requests without an
// Origin header (curl, server-to-server) pass through; unknown origins are
// rejected with ErrOriginNotAllowed. Preflight requests are answered with 204.
//
// The CORS headers themselves are written by go-chi/cors.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	origins := make([]string, 0, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimRight(o, "/")
		allowed[o] = struct{}{}
		origins = append(origins, o)
	}

	policy := cors.New(cors.Options{
		AllowedOrigins:       origins,
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:       []string{"*"},
		ExposedHeaders:       []string{requestIDHeader},
		AllowCredentials:     true,
		MaxAge:               600,
		OptionsSuccessStatus: http.StatusNoContent,
	})

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
			c.Next()
			return
		}

		if _, ok := allowed[origin]; !ok {
			_ = c.Error(apperrors.ErrOriginNotAllowed)
			c.Abort()
			return
		}

		// Preflights are answered by the policy and never reach next.
		forwarded := false
		next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { forwarded = true })
		policy.Handler(next).ServeHTTP(c.Writer, c.Request)
		if !forwarded {
			c.Abort()
			return
		}

		c.Next()
	}
}
