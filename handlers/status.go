package handlers

import (
	"net/http"

	"calendrix/config"
	"calendrix/utils"

	"github.com/gin-gonic/gin"
)

// Status reports which external integrations are configured and the booking
// zone in effect, so a client can tell a half-configured deployment apart
// from a broken one.
func Status(c *gin.Context) {
	cfg := config.AppConfig
	health := utils.GetHealthStatus()

	c.JSON(http.StatusOK, gin.H{
		"status":              "ok",
		"environment":         cfg.Env,
		"model_configured":    cfg.GeminiAPIKey != "",
		"calendar_configured": cfg.GoogleServiceAccountFile != "",
		"calendar_id":         cfg.GoogleCalendarID,
		"timezone":            cfg.BookingTimezone,
		"mongo_healthy":       health.Mongo,
		"redis_healthy":       health.Redis,
	})
}
