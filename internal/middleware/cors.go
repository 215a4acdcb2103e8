package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/playpool/pocketball/internal/config"
)

// CORSMiddleware returns a CORS middleware configured for the environment
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	log.Printf("[CORS] Environment: %s, FrontendURL: %s", cfg.Environment, cfg.FrontendURL)

	corsConfig := cors.Config{
		AllowMethods: []string{
			"GET", "POST", "DELETE", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin", "Content-Length", "Content-Type", "Authorization",
			"X-Admin-Token", "X-Table-Token", "Accept", "Cache-Control",
			"X-Requested-With",
		},
		ExposeHeaders: []string{
			"Content-Length", "X-Table-ID",
		},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	corsConfig.AllowOrigins = allowedOrigins(cfg)
	if len(corsConfig.AllowOrigins) == 0 {
		// cors.New refuses a config that allows nothing
		log.Printf("[CORS] WARNING: FRONTEND_URL not set, cross-origin requests are refused")
		corsConfig.AllowOriginFunc = func(string) bool { return false }
	}
	if cfg.Environment != "development" {
		log.Printf("[CORS] Production allowed origins: %v", corsConfig.AllowOrigins)
	}

	return cors.New(corsConfig)
}

// WebSocketCORSCheck validates WebSocket upgrade origins
func WebSocketCORSCheck(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.ToLower(c.GetHeader("Connection")) != "upgrade" ||
			strings.ToLower(c.GetHeader("Upgrade")) != "websocket" {
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")
		if origin == "" {
			// non-browser clients such as the scoreboard send no origin
			c.Next()
			return
		}

		if !OriginAllowed(cfg, origin) {
			c.JSON(403, gin.H{"error": "WebSocket origin not allowed"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// OriginAllowed reports whether a browser origin may open a table socket.
func OriginAllowed(cfg *config.Config, origin string) bool {
	if cfg.Environment == "development" &&
		(strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:")) {
		return true
	}
	for _, allowed := range allowedOrigins(cfg) {
		if origin == allowed {
			return true
		}
	}
	return false
}

func allowedOrigins(cfg *config.Config) []string {
	if cfg.Environment == "development" {
		origins := []string{
			"http://localhost:5173", // Vite dev server
			"http://127.0.0.1:5173",
		}
		if cfg.FrontendURL != "" && cfg.FrontendURL != origins[0] {
			origins = append(origins, cfg.FrontendURL)
		}
		return origins
	}
	if cfg.FrontendURL == "" {
		return []string{}
	}
	return []string{cfg.FrontendURL}
}
