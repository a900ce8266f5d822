package handlers

import (
	"net/http"
	"strconv"

	"toolshare/middleware"
	"toolshare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves a Zap logger from the Gin context or falls back to the global one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get(middleware.ContextLogger); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

// currentUserID returns the id set by the auth middleware. It writes a 401 and returns false when absent.
func currentUserID(c *gin.Context) (string, bool) {
	id, exists := c.Get(middleware.ContextUserID)
	if !exists {
		utils.JSONError(c, http.StatusUnauthorized, "Not authorized")
		return "", false
	}
	idStr, ok := id.(string)
	if !ok || idStr == "" {
		getLogger(c).Error("Invalid user ID type", zap.Any("userID", id))
		utils.JSONError(c, http.StatusUnauthorized, "Not authorized")
		return "", false
	}
	return idStr, true
}

// pageParams reads page and limit from the query string. Unparseable values count as unset.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return page, limit
}

func optionalFloat(c *gin.Context, key string) (*float64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}
