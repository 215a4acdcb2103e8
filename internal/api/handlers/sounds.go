package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/playpool/pocketball/internal/audio"
)

// ServeSound returns a synthesized sound as audio/wav.
func ServeSound(bank *audio.Bank) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSuffix(c.Param("name"), ".wav")
		data, err := bank.WAV(name)
		if errors.Is(err, audio.ErrUnknownSound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown sound"})
			return
		}
		if err != nil {
			log.Printf("[AUDIO] Failed to render %s: %v", name, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render sound"})
			return
		}
		c.Header("Cache-Control", "public, max-age=86400")
		c.Data(http.StatusOK, "audio/wav", data)
	}
}

// ListSounds returns the available sound names.
func ListSounds(bank *audio.Bank) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"sounds": bank.Names()})
	}
}
