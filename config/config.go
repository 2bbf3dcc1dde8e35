package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every externally-tunable parameter. It is loaded once
// at startup and passed into the components that need it; nothing
// below main reads the environment.
type Config struct {
	HTTPAddr    string
	DatabaseURL string

	JWTIssuer          string
	AccessTokenSecret  string
	AccessTokenTTL     time.Duration
	RefreshTokenSecret string
	RefreshTokenTTL    time.Duration

	OTPTTL time.Duration

	CookieDomain string
	CookieSecure bool
	CookieMaxAge time.Duration

	ResendAPIKey string
	MailFrom     string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTIssuer:          getEnv("JWT_ISSUER", "bozor"),
		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_KEY"),
		AccessTokenTTL:     getDuration("ACCESS_TOKEN_TIME", 15*time.Minute),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_KEY"),
		RefreshTokenTTL:    getDuration("REFRESH_TOKEN_TIME", 15*24*time.Hour),
		OTPTTL:             getDuration("OTP_TIME", 5*time.Minute),
		CookieDomain:       os.Getenv("COOKIE_DOMAIN"),
		CookieSecure:       os.Getenv("COOKIE_SECURE") != "false",
		CookieMaxAge:       getDuration("COOKIE_TIME", 15*24*time.Hour),
		ResendAPIKey:       os.Getenv("RESEND_API_KEY"),
		MailFrom:           os.Getenv("MAIL_FROM"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return nil, errors.New("ACCESS_TOKEN_KEY and REFRESH_TOKEN_KEY are required")
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, errors.New("access and refresh token secrets must differ")
	}
	return cfg, nil
}

func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
