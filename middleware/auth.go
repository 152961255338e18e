package middleware

import (
	"net/http"
	"strings"

	"riverwood/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthAdminMiddleware guards the admin API. The token must be valid and
// carry the admin subject.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		sub, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || sub != "admin" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("adminID", sub)
		c.Next()
	}
}
