// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Hasher algorithm names accepted by PASSWORD_HASHER.
const (
	HasherBcrypt = "bcrypt"
	HasherArgon2 = "argon2"
)

// Config holds the application configuration.
type Config struct {
	// Server settings
	Port    string
	GinMode string

	// Session settings
	JWTSecret string
	TokenTTL  time.Duration

	// Password hashing
	PasswordHasher string
	BcryptCost     int

	// CORS settings — comma-separated list of allowed origins.
	CORSAllowedOrigins string

	// SeedDemoUsers pre-registers demo accounts on startup.
	SeedDemoUsers bool
}

// Load reads configuration from the environment. A .env file in the
// working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		TokenTTL:           getEnvAsDuration("TOKEN_TTL", time.Hour),
		PasswordHasher:     getEnv("PASSWORD_HASHER", HasherBcrypt),
		BcryptCost:         getEnvAsInt("BCRYPT_COST", 10),
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		SeedDemoUsers:      getEnvAsBool("SEED_DEMO_USERS", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration. A missing signing secret is fatal:
// a server that cannot sign tokens must not come up at all.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	switch c.PasswordHasher {
	case HasherBcrypt, HasherArgon2:
	default:
		return fmt.Errorf("PASSWORD_HASHER must be %q or %q, got %q",
			HasherBcrypt, HasherArgon2, c.PasswordHasher)
	}
	return nil
}

// IsRelease reports whether the server runs in release mode. Cookies are
// marked Secure only in release mode so local HTTP development keeps working.
func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
