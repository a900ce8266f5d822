package middleware

import (
	"errors"
	"net/http"

	userRepo "toolshare/database/repository/user"
	"toolshare/models"
	"toolshare/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AdminOnlyMiddleware must run after JWTAuthUserMiddleware. The role claim in the token is not trusted
// on its own; the stored role is looked up and cached for utils.AuthCacheTTL.
func AdminOnlyMiddleware(users userRepo.UserRepository, authCache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(ContextUserID)
		if userID == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Not authorized")
			return
		}
		ctx := c.Request.Context()
		key := utils.AuthCachePrefix + userID

		role := ""
		if authCache != nil {
			if cached, err := authCache.Get(ctx, key).Result(); err == nil {
				role = cached
			} else if !errors.Is(err, redis.Nil) {
				zap.L().Warn("role cache read failed", zap.Error(err))
			}
		}

		if role == "" {
			u, err := users.GetByID(ctx, userID)
			if err != nil {
				utils.RespondError(c, utils.NewInternalError("failed to load user", err))
				return
			}
			if u == nil {
				utils.JSONError(c, http.StatusUnauthorized, "Not authorized")
				return
			}
			role = string(u.Role)
			if authCache != nil {
				if err := authCache.Set(ctx, key, role, utils.AuthCacheTTL).Err(); err != nil {
					zap.L().Warn("role cache write failed", zap.Error(err))
				}
			}
		}

		if role != string(models.RoleAdmin) {
			utils.JSONError(c, http.StatusForbidden, "Admin access required")
			return
		}
		c.Next()
	}
}
