package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/playpool/pocketball/internal/admin"
	"github.com/playpool/pocketball/internal/ranking"
)

func rankingParams(c *gin.Context) (ranking.Board, int, bool) {
	board, err := ranking.ParseBoard(c.Param("board"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", 0, false
	}
	length, err := strconv.Atoi(c.Param("length"))
	if err != nil || length < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "match length must be a positive number"})
		return "", 0, false
	}
	return board, length, true
}

// GetRanking returns one leaderboard.
func GetRanking(rankings *ranking.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		board, length, ok := rankingParams(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"board":        board,
			"match_length": length,
			"ranking":      rankings.GetRanking(c.Request.Context(), board, length),
		})
	}
}

// ResetRanking clears one leaderboard.
func ResetRanking(rankings *ranking.Manager, auditor *admin.Auditor) gin.HandlerFunc {
	return func(c *gin.Context) {
		board, length, ok := rankingParams(c)
		if !ok {
			return
		}

		details := map[string]interface{}{"board": board, "match_length": length}
		if err := rankings.Reset(c.Request.Context(), board, length); err != nil {
			auditor.LogAction(c.Request.Context(), c.ClientIP(), c.FullPath(), "reset_ranking", details, false)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset ranking"})
			return
		}
		auditor.LogAction(c.Request.Context(), c.ClientIP(), c.FullPath(), "reset_ranking", details, true)
		c.JSON(http.StatusOK, gin.H{"reset": ranking.Key(board, length)})
	}
}
