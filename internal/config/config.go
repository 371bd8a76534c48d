package config

import (
	"fmt"
	"os"
	"time"

	"fleetride-service/internal/pkg/jwt"

	"github.com/spf13/cast"
)

type AppConfig struct {
	// Server
	HTTPAddr string

	// Postgres
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	// Redis
	RedisAddr string
	RedisPass string

	// JWT
	JWT jwt.Config

	// Booking
	RideBaseFare      float64
	BookingRateLimit  int64
	BookingRateWindow time.Duration
	ReconcileSchedule string
	ReconcileMinAge   time.Duration
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr: getEnv("HTTP_ADDR", ":8000"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getEnv("POSTGRES_DB", "fleetride"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: getEnv("REDIS_PASS", ""),

		JWT: jwt.Config{
			Secret:   getEnv("JWT_SECRET", ""),
			Issuer:   "fleetride",
			Audience: "fleetride-users",
			TTL:      time.Duration(cast.ToInt(getEnv("JWT_TTL_HOURS", "24"))) * time.Hour,
		},

		RideBaseFare:      cast.ToFloat64(getEnv("RIDE_BASE_FARE", "100")),
		BookingRateLimit:  cast.ToInt64(getEnv("BOOKING_RATE_LIMIT", "10")),
		BookingRateWindow: time.Duration(cast.ToInt(getEnv("BOOKING_RATE_WINDOW_SEC", "60"))) * time.Second,
		ReconcileSchedule: getEnv("RECONCILE_SCHEDULE", "@every 5m"),
		ReconcileMinAge:   time.Duration(cast.ToInt(getEnv("RECONCILE_MIN_AGE_MIN", "10"))) * time.Minute,
	}
}

// PostgresURL assembles the pgx connection string.
func (c AppConfig) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDB,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
