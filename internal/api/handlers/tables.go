package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playpool/pocketball/internal/config"
	"github.com/playpool/pocketball/internal/session"
	"github.com/playpool/pocketball/internal/table"
	"github.com/playpool/pocketball/internal/ws"
)

// CreateTable opens a new table and returns its player and spectator
// tokens.
func CreateTable(reg *session.Registry, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := reg.Create()
		if err != nil {
			log.Printf("[TABLE] Failed to create table: %v", err)
			status := http.StatusInternalServerError
			msg := "Failed to create table"
			if errors.Is(err, table.ErrBoardExhausted) || errors.Is(err, table.ErrNoBodies) {
				msg = "Board could not be generated"
			}
			c.JSON(status, gin.H{"error": msg, "detail": err.Error()})
			return
		}

		playerToken, exp, err := IssueTableToken(cfg.JWTSecret, t.ID, ws.RolePlayer, cfg.TableTokenTTL())
		if err != nil {
			log.Printf("[TABLE] Failed to issue token for %s: %v", t.ID, err)
			reg.Remove(t.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}
		spectatorToken, _, err := IssueTableToken(cfg.JWTSecret, t.ID, ws.RoleSpectator, cfg.TableTokenTTL())
		if err != nil {
			log.Printf("[TABLE] Failed to issue token for %s: %v", t.ID, err)
			reg.Remove(t.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}

		c.Header("X-Table-ID", t.ID)
		c.JSON(http.StatusCreated, gin.H{
			"table_id":        t.ID,
			"player_token":    playerToken,
			"spectator_token": spectatorToken,
			"expires_at":      exp.UTC(),
			"ws_url":          "/api/v1/tables/" + t.ID + "/ws",
		})
	}
}

// GetTable returns the table state snapshot.
func GetTable(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := reg.Get(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
			return
		}
		st, err := t.State(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusGone, gin.H{"error": "table closed", "detail": t.Fatal()})
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

// CloseTable ends a table. Only players may close it.
func CloseTable(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if roleFrom(c) != ws.RolePlayer {
			c.JSON(http.StatusForbidden, gin.H{"error": "spectators cannot close a table"})
			return
		}
		if !reg.Remove(c.Param("id")) {
			c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"closed": true})
	}
}

// TableWebSocket upgrades to the table's websocket.
func TableWebSocket(reg *session.Registry, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := reg.Get(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
			return
		}
		hub.ServeTable(c.Writer, c.Request, t.ID, t, roleFrom(c))
	}
}
