package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "spendsmart/internal/errors"
)

// UserIDKey is the gin context key holding the authenticated owner id.
const UserIDKey = "userID"

// GenerateAccessToken signs an HS256 token whose subject is ownerID. The API
// only verifies tokens; this is for tooling and tests.
func GenerateAccessToken(secret, issuer, ownerID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   ownerID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// parseToken verifies tokenString and returns its subject.
func parseToken(tokenString, secret, issuer string) (string, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return claims.Subject, nil
}

// AuthMiddleware verifies the bearer token and stores its subject in the
// context under UserIDKey. Failures are left on the context for ErrorHandler.
func AuthMiddleware(secret, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			_ = c.Error(apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			_ = c.Error(apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		ownerID, err := parseToken(parts[1], secret, issuer)
		if err != nil {
			_ = c.Error(apperrors.Wrap(apperrors.ErrInvalidToken, err))
			c.Abort()
			return
		}

		c.Set(UserIDKey, ownerID)
		c.Next()
	}
}
