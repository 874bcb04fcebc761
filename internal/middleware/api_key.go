package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/onegreenvn/phishing-campaign-service/internal/services/auth"
)

// APIKeyMiddleware handles API key authentication
type APIKeyMiddleware struct {
	authService *auth.AuthService
}

// NewAPIKeyMiddleware creates a new API key middleware
func NewAPIKeyMiddleware(authService *auth.AuthService) *APIKeyMiddleware {
	return &APIKeyMiddleware{authService: authService}
}

// APIKeyAuthMiddleware validates an "ApiKey <key>" header. Other schemes are
// left to the next middleware.
func (m *APIKeyMiddleware) APIKeyAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "ApiKey ") {
			c.Next()
			return
		}

		apiKey := strings.TrimPrefix(authHeader, "ApiKey ")
		if apiKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key format"})
			c.Abort()
			return
		}

		if err := m.authService.ValidateAPIKey(apiKey); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set("operator", "api_key")
		c.Set("auth_type", "api_key")
		c.Next()
	}
}
