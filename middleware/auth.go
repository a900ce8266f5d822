package middleware

import (
	"net/http"
	"strings"

	"toolshare/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Context keys set by JWTAuthUserMiddleware.
const (
	ContextUserID      = "userID"
	ContextRole        = "role"
	ContextAccessToken = "accessToken"
)

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// JWTAuthUserMiddleware resolves the bearer token to a user identity.
// Tokens revoked by logout are rejected. A nil authCache skips the revocation check.
func JWTAuthUserMiddleware(authCache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		claims, err := utils.ParseAccessToken(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}

		if authCache != nil {
			revoked, err := authCache.Exists(c.Request.Context(), utils.RevokedTokenPrefix+utils.HashToken(tokenString)).Result()
			if err != nil {
				// Redis outages must not lock every user out.
				zap.L().Warn("revocation check failed", zap.Error(err))
			} else if revoked > 0 {
				utils.JSONError(c, http.StatusUnauthorized, "Not authorized, token revoked")
				return
			}
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextAccessToken, tokenString)
		c.Next()
	}
}
