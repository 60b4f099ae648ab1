package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/screenaware/screenaware/internal/core/services"
)

const (
	authorizationHeader = "Authorization"
	authorizationType   = "Bearer"
	ContextUserIDKey    = "userID"
	ContextTokenKey     = "token"
)

// TokenValidator resolves a bearer token to the user it was issued for.
type TokenValidator interface {
	ValidateToken(tokenString string) (string, error)
}

var _ TokenValidator = (*services.TokenService)(nil)

func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) != 2 || !strings.EqualFold(fields[0], authorizationType) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		userID, err := tokens.ValidateToken(fields[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextTokenKey, fields[1])

		c.Next()
	}
}

func GetUserID(c *gin.Context) (string, bool) {
	return getString(c, ContextUserIDKey)
}

// GetToken returns the raw bearer token accepted by AuthMiddleware.
func GetToken(c *gin.Context) (string, bool) {
	return getString(c, ContextTokenKey)
}

func getString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
