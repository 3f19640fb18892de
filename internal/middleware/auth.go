package middleware

import (
	"net/http"
	"strings"

	"systempay_backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware - middleware проверки JWT для merchant API.
// IPN-роут шлюза его не использует: там аутентификация - только подпись.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// Сохраняем claims в контекст
		c.Set("merchantID", claims.MerchantID)
		c.Next()
	}
}
