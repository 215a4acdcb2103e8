package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/playpool/pocketball/internal/admin"
	"github.com/playpool/pocketball/internal/api/handlers"
	"github.com/playpool/pocketball/internal/audio"
	"github.com/playpool/pocketball/internal/config"
	"github.com/playpool/pocketball/internal/middleware"
	"github.com/playpool/pocketball/internal/ranking"
	"github.com/playpool/pocketball/internal/session"
	"github.com/playpool/pocketball/internal/ws"
)

// Deps are the services the routes are served from.
type Deps struct {
	Registry *session.Registry
	Hub      *ws.Hub
	Rankings *ranking.Manager
	Auditor  *admin.Auditor
	Sounds   *audio.Bank
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *config.Config, d Deps) {
	router.Use(middleware.CORSMiddleware(cfg))

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] No-cache headers enabled for API routes")
	}

	// ServeSound overrides Cache-Control so browsers keep the WAVs
	router.GET("/sounds", handlers.ListSounds(d.Sounds))
	router.GET("/sounds/:name", handlers.ServeSound(d.Sounds))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck(d.Registry))

		v1.POST("/tables", handlers.CreateTable(d.Registry, cfg))
		tables := v1.Group("/tables/:id", handlers.TableAuth(cfg.JWTSecret))
		{
			tables.GET("", handlers.GetTable(d.Registry))
			tables.DELETE("", handlers.CloseTable(d.Registry))
			tables.GET("/ws", middleware.WebSocketCORSCheck(cfg), handlers.TableWebSocket(d.Registry, d.Hub))
		}

		v1.GET("/rankings/:board/:length", handlers.GetRanking(d.Rankings))

		adminGroup := v1.Group("/admin", handlers.AdminAuth(cfg.AdminTokenHash, d.Auditor))
		{
			adminGroup.DELETE("/rankings/:board/:length", handlers.ResetRanking(d.Rankings, d.Auditor))
			adminGroup.GET("/audit", handlers.GetAdminAuditLogs(d.Auditor))
		}
	}
}
