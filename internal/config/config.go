package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Ranking storage backends.
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL    string
	MigrateOnStart bool
	MigrationsDir  string

	// Redis
	RedisURL string

	// Server
	Port        string
	FrontendURL string

	// Rankings
	RankingBackend  string
	SlackWebhookURL string

	// Game Settings
	SettleDelayMS      int
	DefaultMatchLength int
	BoardBodyCount     int
	BoardMaxRetries    int
	BoardWidth         int
	BoardHeight        int
	SoundVolume        float64
	TableIdleMinutes   int

	// Security
	JWTSecret            string
	TableTokenTTLMinutes int
	AdminTokenHash       string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Database
		DatabaseURL:    getEnv("DATABASE_URL", "postgres://localhost:5432/pocketball?sslmode=disable"),
		MigrateOnStart: getEnv("MIGRATE_ON_START", "false") == "true",
		MigrationsDir:  getEnv("MIGRATIONS_DIR", "migrations"),

		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Rankings
		RankingBackend:  strings.ToLower(getEnv("RANKING_BACKEND", BackendRedis)),
		SlackWebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),

		// Game Settings
		SettleDelayMS:      getEnvInt("SETTLE_DELAY_MS", 50),
		DefaultMatchLength: getEnvInt("DEFAULT_MATCH_LENGTH", 3),
		BoardBodyCount:     getEnvInt("BOARD_BODY_COUNT", 5),
		BoardMaxRetries:    getEnvInt("BOARD_MAX_RETRIES", 200),
		BoardWidth:         getEnvInt("BOARD_WIDTH", 800),
		BoardHeight:        getEnvInt("BOARD_HEIGHT", 600),
		SoundVolume:        getEnvFloat("SOUND_VOLUME", 0.8),
		TableIdleMinutes:   getEnvInt("TABLE_IDLE_MINUTES", 30),

		// Security
		JWTSecret:            getEnv("JWT_SECRET", "change-me-in-production"),
		TableTokenTTLMinutes: getEnvInt("TABLE_TOKEN_TTL_MINUTES", 240),
		AdminTokenHash:       getEnv("ADMIN_TOKEN_HASH", ""),
	}

	if cfg.BoardBodyCount < 1 {
		log.Printf("[CONFIG] BOARD_BODY_COUNT=%d leaves nothing to pocket, using 5", cfg.BoardBodyCount)
		cfg.BoardBodyCount = 5
	}
	return cfg
}

// SettleDelay is the wait between a score and the round end check.
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMS) * time.Millisecond
}

func (c *Config) TableIdleTimeout() time.Duration {
	return time.Duration(c.TableIdleMinutes) * time.Minute
}

func (c *Config) TableTokenTTL() time.Duration {
	return time.Duration(c.TableTokenTTLMinutes) * time.Minute
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
