package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/hetpatel672/BudgetWise/internal/auth"
)

// SessionClaims represents the claims in a session token minted after a
// successful PIN authentication.
type SessionClaims struct {
	Method string `json:"method"`
	jwt.RegisteredClaims
}

// GenerateSessionToken mints a short-lived HS256 token for the current
// session. The token's lifetime matches the configured session timeout;
// actual liveness is still enforced by the auth service's idle check.
func GenerateSessionToken(secret string, ttl time.Duration, method auth.Method) (string, error) {
	claims := &SessionClaims{
		Method: string(method),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "budgetwise-core",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// parseSessionToken validates a session token string.
func parseSessionToken(secret, tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return claims, nil
}

// Session returns a middleware gating protected routes. When no PIN is
// configured access is granted without a token (the "none" method
// auto-succeeds). Otherwise a valid bearer token and a live session are
// both required, and each request refreshes the activity clock.
func Session(authSvc *auth.Service, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authSvc.Method() == auth.MethodNone {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		if _, err := parseSessionToken(secret, parts[1]); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		if !authSvc.Authenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session has expired"})
			c.Abort()
			return
		}

		authSvc.Touch()
		c.Next()
	}
}
