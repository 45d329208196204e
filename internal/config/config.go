// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds all server-related settings
type ServerConfig struct {
	Port           int
	Host           string
	MetricsEnabled bool
	RateLimit      int // requests per minute per client IP, 0 disables
}

// DatabaseConfig holds database configuration settings
type DatabaseConfig struct {
	URI            string
	Name           string
	ConnectRetries int           // bounded attempts for the initial connection
	ConnectBackoff time.Duration // fixed delay between attempts
}

// Config holds the complete application configuration
type Config struct {
	Server         *ServerConfig
	Database       *DatabaseConfig
	AllowedOrigins []string
	Debug          bool
}

// DefaultConfig provides default server settings
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Port:           8080,
		Host:           "0.0.0.0",
		MetricsEnabled: true,
		RateLimit:      60,
	}
}

// DefaultDatabaseConfig provides default database settings
func DefaultDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URI:            "mongodb://localhost:27017",
		Name:           "greensphere",
		ConnectRetries: 5,
		ConnectBackoff: 2 * time.Second,
	}
}

// LoadConfig loads configuration from environment variables and applies defaults
func LoadConfig() (*Config, error) {
	// Try to load .env from the working directory or the project root when
	// running from cmd/server. Missing .env files are fine; real env wins.
	envLocations := []string{
		".env",
		"../../.env",
	}
	for _, location := range envLocations {
		if err := godotenv.Load(location); err == nil {
			break
		}
	}

	serverConfig := DefaultConfig()

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
		}
		serverConfig.Port = port
	}

	if host := os.Getenv("HOST"); host != "" {
		serverConfig.Host = host
	}

	if metricsEnabled := os.Getenv("METRICS_ENABLED"); metricsEnabled != "" {
		serverConfig.MetricsEnabled = metricsEnabled == "true"
	}

	if limitStr := os.Getenv("RATE_LIMIT"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit >= 0 {
			serverConfig.RateLimit = limit
		}
	}

	dbConfig := DefaultDatabaseConfig()

	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		dbConfig.URI = uri
	}
	if name := os.Getenv("MONGODB_DB"); name != "" {
		dbConfig.Name = name
	}
	if retriesStr := os.Getenv("DB_CONNECT_RETRIES"); retriesStr != "" {
		if retries, err := strconv.Atoi(retriesStr); err == nil && retries > 0 {
			dbConfig.ConnectRetries = retries
		}
	}
	if backoffStr := os.Getenv("DB_CONNECT_BACKOFF"); backoffStr != "" {
		if backoff, err := time.ParseDuration(backoffStr); err == nil && backoff > 0 {
			dbConfig.ConnectBackoff = backoff
		}
	}

	config := &Config{
		Server:         serverConfig,
		Database:       dbConfig,
		AllowedOrigins: []string{"*"},
		Debug:          false,
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		config.Debug = true
	}

	return config, nil
}
