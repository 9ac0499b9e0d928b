// internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/greeniecart/greeniecart-backend/internal/cache"
	"github.com/greeniecart/greeniecart-backend/internal/i18n"
	"github.com/greeniecart/greeniecart-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and rejects revoked ones. Claims
// land in the gin context under "user_id", "email", "name" and "claims".
func AuthRequired(blacklist *cache.TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthRequired),
			})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthInvalidToken),
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthTokenExpired),
			})
			c.Abort()
			return
		}

		if blacklist != nil {
			revoked, err := blacklist.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// Redis being down should not lock every user out.
				logrus.WithError(err).Warn("token blacklist check failed")
			} else if revoked {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error": i18n.T(lang, i18n.KeyAuthTokenRevoked),
				})
				c.Abort()
				return
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("name", claims.Name)
		c.Set("claims", claims)
		c.Next()
	}
}

// OptionalAuth populates the user context when a valid token is present but
// lets anonymous requests through.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("name", claims.Name)
		c.Set("claims", claims)
		c.Next()
	}
}
