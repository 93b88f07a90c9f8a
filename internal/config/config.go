// Package config provides configuration loading and validation for the
// careerdoc server, plus JWT and password-hashing settings.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the server configuration, loaded from the environment.
type Config struct {
	Port        int
	DatabaseURL string

	// GeminiAPIKey selects the generation backend: when set the pipeline is
	// model-backed, otherwise the deterministic rule-based service is used.
	GeminiAPIKey string

	JWT      JWTConfig
	Password PasswordConfig
}

// FromEnv loads the server configuration from environment variables.
// DATABASE_URL and JWT_SECRET are required; GEMINI_API_KEY is optional.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:         8080,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		JWT: JWTConfig{
			Secret:          os.Getenv("JWT_SECRET"),
			ExpirationHours: 24,
		},
		Password: PasswordConfig{
			BcryptCost: 12,
			Pepper:     os.Getenv("PASSWORD_PEPPER"),
		},
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	if hoursStr := os.Getenv("JWT_EXPIRATION_HOURS"); hoursStr != "" {
		hours, err := strconv.Atoi(hoursStr)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
		}
		cfg.JWT.ExpirationHours = hours
	}

	if costStr := os.Getenv("BCRYPT_COST"); costStr != "" {
		cost, err := strconv.Atoi(costStr)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
		}
		cfg.Password.BcryptCost = cost
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: port out of range: %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("config error: JWT_SECRET is required")
	}
	if c.JWT.ExpirationHours < 1 {
		return fmt.Errorf("config error: JWT_EXPIRATION_HOURS must be at least 1, got %d", c.JWT.ExpirationHours)
	}
	if c.Password.BcryptCost < 10 || c.Password.BcryptCost > 14 {
		return fmt.Errorf("config error: bcrypt cost out of range: %d (must be 10-14)", c.Password.BcryptCost)
	}
	return nil
}

// JWTConfig holds settings for token generation and validation.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}
