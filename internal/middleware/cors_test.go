package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/playpool/pocketball/internal/config"
)

func TestOriginAllowed(t *testing.T) {
	dev := &config.Config{Environment: "development", FrontendURL: "http://localhost:5173"}
	prod := &config.Config{Environment: "production", FrontendURL: "https://pool.example.com"}

	tests := []struct {
		cfg    *config.Config
		origin string
		want   bool
	}{
		{dev, "http://localhost:3000", true},
		{dev, "http://127.0.0.1:5173", true},
		{dev, "https://evil.example.com", false},
		{prod, "https://pool.example.com", true},
		{prod, "http://localhost:5173", false},
	}
	for _, tt := range tests {
		if got := OriginAllowed(tt.cfg, tt.origin); got != tt.want {
			t.Errorf("OriginAllowed(%s, %q) = %v, want %v", tt.cfg.Environment, tt.origin, got, tt.want)
		}
	}
}

func TestWebSocketCORSCheckRejectsForeignOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(WebSocketCORSCheck(&config.Config{Environment: "production", FrontendURL: "https://pool.example.com"}))
	r.GET("/ws", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Origin", "https://evil.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}

	req.Header.Set("Origin", "https://pool.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
