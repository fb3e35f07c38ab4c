package config

import (
	"os"
	"time"
)

type Config struct {
	Port       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	RedisHost  string
	RedisPort  string
	GinMode    string

	JWTSecret string
	TokenTTL  time.Duration

	// AllowHeaderIdentity keeps the original raw user-id header contract
	// alive next to bearer tokens. Disable for hardened deployments.
	AllowHeaderIdentity bool

	// EnforceTerminalStatus rejects transitions out of accepted/rejected
	// instead of overwriting them.
	EnforceTerminalStatus bool
}

func Load() *Config {
	return &Config{
		Port:                  getEnv("PORT", "3000"),
		DBHost:                getEnv("DB_HOST", "localhost"),
		DBPort:                getEnv("DB_PORT", "5432"),
		DBUser:                getEnv("DB_USER", "farmlink"),
		DBPassword:            getEnv("DB_PASSWORD", "farmlink"),
		DBName:                getEnv("DB_NAME", "farmlink"),
		DBSSLMode:             getEnv("DB_SSLMODE", "disable"),
		RedisHost:             getEnv("REDIS_HOST", ""),
		RedisPort:             getEnv("REDIS_PORT", "6379"),
		GinMode:               getEnv("GIN_MODE", "debug"),
		JWTSecret:             getEnv("JWT_SECRET", "default-secret-key-change-me"),
		TokenTTL:              getDuration("TOKEN_TTL", 7*24*time.Hour),
		AllowHeaderIdentity:   getBool("ALLOW_HEADER_IDENTITY", true),
		EnforceTerminalStatus: getBool("ENFORCE_TERMINAL_STATUS", false),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getBool(key string, defaultValue bool) bool {
	switch os.Getenv(key) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
