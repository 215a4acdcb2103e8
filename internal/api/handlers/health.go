package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playpool/pocketball/internal/session"
)

var startTime = time.Now()

const version = "1.0.0"

// HealthCheck returns server health status
func HealthCheck(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "pocketball-api",
			"version": version,
			"uptime":  time.Since(startTime).String(),
			"tables":  reg.Len(),
		})
	}
}
