package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
)

// Config holds the process-wide runtime values. Each field corresponds
// to an environment variable; every one has a demo-friendly default so the
// service starts with no environment at all.
type Config struct {
	Env               string // application environment (dev, prod)
	Port              string // HTTP port to listen on
	LogLevel          string // zap level name (debug, info, warn, error)
	JWTSecret         string // secret used to sign staff JWTs; empty disables staff routes
	AccessTTLMin      int    // staff access token time-to-live in minutes
	BcryptCost        int    // bcrypt cost used by the staff-token tool
	StaffUsername     string // staff login name
	StaffPasswordHash string // bcrypt hash of the staff password
}

// Load reads an optional .env file and then the environment.
func Load() Config {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	return Config{
		Env:               envStr("APP_ENV", "dev"),
		Port:              envStr("APP_PORT", "8080"),
		LogLevel:          envStr("LOG_LEVEL", "info"),
		JWTSecret:         envStr("JWT_SECRET", ""),
		AccessTTLMin:      envInt("ACCESS_TOKEN_TTL_MIN", 60),
		BcryptCost:        envInt("BCRYPT_COST", 10),
		StaffUsername:     envStr("STAFF_USERNAME", "staff"),
		StaffPasswordHash: envStr("STAFF_PASSWORD_HASH", ""),
	}
}

// StaffEnabled reports whether staff login and admin routes can be served.
func (c Config) StaffEnabled() bool {
	return c.JWTSecret != "" && c.StaffPasswordHash != ""
}

// Validate rejects combinations that would leave the server half working.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("APP_PORT must not be empty")
	}
	if c.StaffPasswordHash != "" && c.JWTSecret == "" {
		return errors.New("STAFF_PASSWORD_HASH is set but JWT_SECRET is empty")
	}
	if c.AccessTTLMin < 1 {
		return fmt.Errorf("invalid ACCESS_TOKEN_TTL_MIN: %d", c.AccessTTLMin)
	}
	return nil
}
