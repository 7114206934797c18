package middleware

import (
	"net/http"
	"strings"

	"go-travel-api/internal/auth"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware checks if the user has a valid JWT. The SPA sends it as
// an httpOnly cookie (requests go out withCredentials); API clients can
// still use a Bearer header.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Prefer the session cookie set by /login
		tokenString, err := c.Cookie("token")

		// 2. Fall back to "Authorization: Bearer <token>"
		if err != nil || tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"msg": "Mohon login ke akun Anda"})
				c.Abort()
				return
			}
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				c.JSON(http.StatusUnauthorized, gin.H{"msg": "Authorization header must start with Bearer"})
				c.Abort()
				return
			}
		}

		// 3. Validate the token using our auth package
		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "Sesi tidak valid atau kedaluwarsa"})
			c.Abort()
			return
		}

		// 4. Store user info in the context for the next handler to use
		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RequireRole is a secondary guard that checks for specific permissions
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"msg": "Anda tidak memiliki akses ke resource ini"})
			c.Abort()
			return
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"msg": "Anda tidak memiliki akses ke resource ini"})
		c.Abort()
	}
}
