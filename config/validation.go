package config

import (
	"fmt"
	"strconv"
)

// ValidateConfig checks that the loaded configuration is usable before any
// component starts. A missing upstream credential is caught here rather
// than on the first generation request.
func ValidateConfig(cfg *Config) error {
	if cfg.GroqAPIKey == "" {
		return fmt.Errorf("GROQ_API_KEY or GROQ_API_KEY_FILE must be set")
	}

	if cfg.ServerPort == "" {
		return fmt.Errorf("server port must not be empty")
	}
	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid server port: %s", cfg.ServerPort)
	}

	if cfg.GroqMaxTokens <= 0 {
		return fmt.Errorf("GROQ_MAX_TOKENS must be positive")
	}
	if cfg.GroqTimeout <= 0 {
		return fmt.Errorf("GROQ_TIMEOUT must be positive")
	}

	if cfg.RateLimitEnabled {
		if cfg.RateLimitRequests <= 0 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive when rate limiting is enabled")
		}
		if cfg.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
		}
	}

	return nil
}
