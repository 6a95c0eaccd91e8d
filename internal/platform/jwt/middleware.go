package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextUserID is the gin context key under which the authenticated user's
// ID is stored.
const ContextUserID = "userID"

// AuthorizedFor reports whether the authenticated token subject matches the
// user the request operates on. Handlers behind AuthRequired use it so a
// valid token cannot act on another user's account.
func AuthorizedFor(c *gin.Context, userID string) bool {
	sub := c.GetString(ContextUserID)
	return sub != "" && sub == userID
}

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		if secret == "" {
			// Server misconfiguration
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		// 2. Parse and verify JWT signature
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Check signing algorithm (only HMAC allowed)
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 3. Extract claims (payload)
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, ok := claims["sub"].(string); ok {
				c.Set(ContextUserID, sub)
			}
		}
		// 4. Pass control to the next handler
		c.Next()
	}
}
