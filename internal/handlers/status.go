package handlers

import (
	"net/http"

	"wavehub/internal/monitoring"

	"github.com/gin-gonic/gin"
)

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func Status(c *gin.Context) {
	active, total, uptime := monitoring.Stats()
	c.JSON(http.StatusOK, gin.H{
		"service":              "wavehub API",
		"version":              "0.1.0",
		"status":               "operational",
		"uptime_seconds":       int64(uptime.Seconds()),
		"http_active_requests": active,
		"http_total_requests":  total,
	})
}
