// Package config provides configuration loading and validation for the
// API server.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// ServerConfig holds the environment-driven settings for the API server.
type ServerConfig struct {
	Port          int
	DatabaseURL   string
	AIEngineURL   string
	MatchPoolSize int
}

const (
	defaultPort        = 8080
	defaultAIEngineURL = "http://localhost:3002"
	defaultPoolSize    = 50
)

// NewServerConfig reads server configuration from environment variables.
// DATABASE_URL is required; PORT, AI_ENGINE_URL, and MATCH_POOL_SIZE
// have defaults.
func NewServerConfig() (*ServerConfig, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	cfg := &ServerConfig{
		Port:          defaultPort,
		DatabaseURL:   databaseURL,
		AIEngineURL:   defaultAIEngineURL,
		MatchPoolSize: defaultPoolSize,
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	if url := os.Getenv("AI_ENGINE_URL"); url != "" {
		cfg.AIEngineURL = url
	}

	if sizeStr := os.Getenv("MATCH_POOL_SIZE"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid MATCH_POOL_SIZE: %v", err)
		}
		cfg.MatchPoolSize = size
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalize validates the configuration.
func (c *ServerConfig) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.MatchPoolSize < 1 {
		return fmt.Errorf("match pool size must be positive: %d", c.MatchPoolSize)
	}
	return nil
}
