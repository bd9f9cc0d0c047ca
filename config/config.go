package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// OAuthProvider holds the client credentials for one external provider.
type OAuthProvider struct {
	ClientID     string
	ClientSecret string
}

// Config holds the application configuration
type Config struct {
	BackendURL       string        // Directory service base URL
	Port             string        // Service port
	TrustedBaseURL   string        // Only redirect origin ever honored
	SessionSecret    string        // Secret for signing session tokens
	SessionMaxAge    time.Duration // Session token lifetime
	DirectoryTimeout time.Duration // Per-call timeout for directory requests
	OAuthStrict      bool          // Fail OAuth login when the directory is down
	Google           OAuthProvider // Google OAuth client pair
	GitHub           OAuthProvider // GitHub OAuth client pair
	DebugLogging     bool          // Verbose request logging toggle
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	config := &Config{
		BackendURL:       getEnv("BACKEND_URL", "http://localhost:8000"),
		Port:             getEnv("PORT", "8080"),
		TrustedBaseURL:   getEnv("TRUSTED_BASE_URL", "http://localhost:3000"),
		SessionSecret:    getEnv("SESSION_SECRET", ""),
		SessionMaxAge:    30 * 24 * time.Hour, // Default 30 days
		DirectoryTimeout: 5 * time.Second,
		OAuthStrict:      getEnv("OAUTH_STRICT", "false") == "true",
		Google: OAuthProvider{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		},
		GitHub: OAuthProvider{
			ClientID:     getEnv("GITHUB_CLIENT_ID", ""),
			ClientSecret: getEnv("GITHUB_CLIENT_SECRET", ""),
		},
		DebugLogging: getEnv("DEBUG_LOGGING", "false") == "true",
	}

	// Parse SESSION_MAX_AGE (seconds) if provided
	if maxAgeStr := os.Getenv("SESSION_MAX_AGE"); maxAgeStr != "" {
		seconds, err := strconv.Atoi(maxAgeStr)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid SESSION_MAX_AGE value: %q", maxAgeStr)
		}
		config.SessionMaxAge = time.Duration(seconds) * time.Second
	}

	// Parse DIRECTORY_TIMEOUT if provided
	if timeoutStr := os.Getenv("DIRECTORY_TIMEOUT"); timeoutStr != "" {
		duration, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid DIRECTORY_TIMEOUT format: %w", err)
		}
		config.DirectoryTimeout = duration
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("BACKEND_URL cannot be empty")
	}

	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET cannot be empty")
	}

	if len(c.SessionSecret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 bytes")
	}

	if !strings.HasPrefix(c.TrustedBaseURL, "http://") && !strings.HasPrefix(c.TrustedBaseURL, "https://") {
		return fmt.Errorf("TRUSTED_BASE_URL must be an absolute http(s) URL")
	}

	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("SESSION_MAX_AGE must be positive")
	}

	return nil
}

// getEnv retrieves an environment variable or returns a fallback value
func getEnv(key, fallback string) string {
	// Check for _FILE suffix
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
