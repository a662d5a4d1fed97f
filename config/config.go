package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Upstream generation capability (Groq chat completions)
	GroqAPIKey    string
	GroqAPIURL    string
	GroqModel     string
	GroqMaxTokens int
	GroqTimeout   time.Duration

	// Redis (rate limiting)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	LogLevel       string
	AllowedOrigins []string
}

// LoadConfig reads configuration from the environment (and an optional .env
// file) and validates it.
func LoadConfig() (*Config, error) {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		ServerHost:        v.GetString("SERVER_HOST"),
		ServerPort:        v.GetString("SERVER_PORT"),
		GroqAPIKey:        v.GetString("GROQ_API_KEY"),
		GroqAPIURL:        v.GetString("GROQ_API_URL"),
		GroqModel:         v.GetString("GROQ_MODEL"),
		GroqMaxTokens:     v.GetInt("GROQ_MAX_TOKENS"),
		GroqTimeout:       v.GetDuration("GROQ_TIMEOUT"),
		RedisHost:         v.GetString("REDIS_HOST"),
		RedisPort:         v.GetString("REDIS_PORT"),
		RedisPassword:     v.GetString("REDIS_PASSWORD"),
		RedisDB:           v.GetInt("REDIS_DB"),
		RedisURL:          v.GetString("REDIS_URL"),
		RateLimitEnabled:  v.GetBool("RATE_LIMIT_ENABLED"),
		RateLimitRequests: v.GetInt("RATE_LIMIT_REQUESTS"),
		RateLimitWindow:   v.GetDuration("RATE_LIMIT_WINDOW"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		AllowedOrigins:    v.GetStringSlice("ALLOWED_ORIGINS"),
	}

	// The credential may be mounted as a file instead of an env var.
	if cfg.GroqAPIKey == "" {
		if keyFile := v.GetString("GROQ_API_KEY_FILE"); keyFile != "" {
			keyBytes, err := os.ReadFile(keyFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read API key file: %w", err)
			}
			cfg.GroqAPIKey = strings.TrimSpace(string(keyBytes))
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("GROQ_API_URL", "https://api.groq.com/openai/v1/chat/completions")
	v.SetDefault("GROQ_MODEL", "llama-3.3-70b-versatile")
	v.SetDefault("GROQ_MAX_TOKENS", 2048)
	v.SetDefault("GROQ_TIMEOUT", 30*time.Second)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_REQUESTS", 30)
	v.SetDefault("RATE_LIMIT_WINDOW", time.Minute)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ALLOWED_ORIGINS", []string{"*"})
}
