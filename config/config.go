// Package config loads service settings from environment variables, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultServerPort     = "8080"
	DefaultShipSpeedRatio = 0.1
	DefaultOpenAIURL      = "https://api.openai.com/v1/chat/completions"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultCORSOrigin     = "http://localhost:3000"
)

// Config holds all service configuration. Load it once at startup.
type Config struct {
	// ServerPort is the HTTP listen port.
	ServerPort string

	// ShipSpeedRatio is the deployment-wide ship speed as a fraction of c.
	ShipSpeedRatio float64

	// BodyCatalogPath points at a YAML body table. Empty uses the embedded one.
	BodyCatalogPath string

	// QuoteDBPath is the SQLite file for stored quotes. Empty keeps quotes in memory.
	QuoteDBPath string

	// RedisAddr enables the Redis answer cache (e.g. "localhost:6379").
	RedisAddr string

	// CacheTTL bounds how long advisor answers are cached.
	CacheTTL time.Duration

	OpenAI OpenAIConfig

	HTTP HTTPConfig

	LogLevel string
}

type OpenAIConfig struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

type HTTPConfig struct {
	CORSOrigin         string
	RateLimitPerMinute float64
	RateLimitBurst     int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	ShutdownTimeout    time.Duration
}

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", DefaultServerPort),
		ShipSpeedRatio:  getEnvFloat("SHIP_SPEED_RATIO", DefaultShipSpeedRatio),
		BodyCatalogPath: getEnv("BODY_CATALOG_PATH", ""),
		QuoteDBPath:     getEnv("QUOTE_DB_PATH", ""),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		CacheTTL:        getEnvDuration("CACHE_TTL", time.Hour),
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			APIURL:  getEnv("OPENAI_API_URL", DefaultOpenAIURL),
			Model:   getEnv("OPENAI_MODEL", DefaultOpenAIModel),
			Timeout: getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		},
		HTTP: HTTPConfig{
			CORSOrigin:         getEnv("CORS_ORIGIN", DefaultCORSOrigin),
			RateLimitPerMinute: getEnvFloat("RATE_LIMIT_PER_MINUTE", 60),
			RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 10),
			ReadTimeout:        15 * time.Second,
			WriteTimeout:       getEnvDuration("WRITE_TIMEOUT", 45*time.Second),
			IdleTimeout:        60 * time.Second,
			ShutdownTimeout:    10 * time.Second,
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if math.IsNaN(c.ShipSpeedRatio) || c.ShipSpeedRatio <= 0 || c.ShipSpeedRatio >= 1 {
		return fmt.Errorf("SHIP_SPEED_RATIO must be in (0, 1), got %v", c.ShipSpeedRatio)
	}
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT must not be empty")
	}
	if math.IsNaN(c.HTTP.RateLimitPerMinute) || math.IsInf(c.HTTP.RateLimitPerMinute, 0) || c.HTTP.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %v", c.HTTP.RateLimitPerMinute)
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + c.ServerPort
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
