package config

import (
	"os"
	"strconv"
	"time"
)

// Recognized environment variables.
const (
	envEnv           = "ENV"
	envEndpointAddr  = "ENDPOINT_ADDR"
	envDatabaseDSN   = "DATABASE_DSN"
	envSecretKey     = "AUTH_SECRET_KEY"
	envTokenTTL      = "TOKEN_TTL_MINUTES"
	envAdminUsername = "ADMIN_USERNAME"
	envAdminPassword = "ADMIN_PASSWORD"
)

// parseEnv overlays Config fields from environment variables. Unset or
// malformed values leave the current value untouched.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv(envEnv); ok {
		config.Env = v
	}
	if v, ok := os.LookupEnv(envEndpointAddr); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv(envDatabaseDSN); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(envSecretKey); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv(envTokenTTL); ok {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			config.TokenTTL = time.Duration(minutes) * time.Minute
		}
	}
	if v, ok := os.LookupEnv(envAdminUsername); ok {
		config.AdminUsername = v
	}
	if v, ok := os.LookupEnv(envAdminPassword); ok {
		config.AdminPassword = v
	}
}
