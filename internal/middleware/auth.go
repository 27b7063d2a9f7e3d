package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patronbase/backend/internal/utils"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "jwt"

// AuthMiddleware verifies the jwt cookie and adds the subject id to the
// request context. Missing, expired and invalid tokens each get their own
// error body so clients can tell them apart; unexpected verification faults
// are not conflated with bad tokens.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(CookieName)
		if err != nil || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		claims, err := utils.ValidateToken(tokenString, secret)
		if err != nil {
			switch {
			case errors.Is(err, utils.ErrTokenExpired):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
			case errors.Is(err, utils.ErrTokenInvalid):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			default:
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}
