package handlers

import (
	"net/http"

	"toolshare/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency probe. Unhealthy snapshots return 503.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	message := "ok"
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
		message = "degraded"
	}
	utils.Respond(c, code, status, message)
}
