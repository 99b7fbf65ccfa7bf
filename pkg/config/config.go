package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Postgres struct {
	Host           string
	Port           int
	User           string
	Pass           string
	DB             string
	SSLMode        string
	MigrationsPath string
}

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	Postgres Postgres

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SessionTTL time.Duration
}

func Load() Config {
	// A missing .env file is fine; real env vars win either way.
	_ = godotenv.Load()

	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		Postgres: Postgres{
			Host:           getEnv("POSTGRES_HOST", "localhost"),
			Port:           getEnvInt("POSTGRES_PORT", 5432),
			User:           getEnv("POSTGRES_USER", "storefront"),
			Pass:           getEnv("POSTGRES_PASSWORD", "storefrontpassword"),
			DB:             getEnv("POSTGRES_DB", "storefront_db"),
			SSLMode:        getEnv("POSTGRES_SSLMODE", "disable"),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		},
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}

	return d
}
