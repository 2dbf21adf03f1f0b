package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values.
type Config struct {
	AppPort         string
	Env             string
	MongoURI        string
	MongoDatabase   string
	JWTSecret       string
	TokenExpires    time.Duration
	CookieExpires   time.Duration
	ProductsPerPage int
	StripeBaseURL   string
	StripeSecretKey string
	StripePublicKey string
	MediaBaseURL    string
	MediaAPIKey     string
	MediaFolder     string
	MailBaseURL     string
	MailAPIToken    string
	MailFrom        string
}

// Load reads environment variables and returns a populated Config.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:         getEnv("APP_PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "gearmart"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		TokenExpires:    getEnvDuration("JWT_TTL_HOURS", 24) * time.Hour,
		CookieExpires:   getEnvDuration("COOKIE_EXPIRES_DAYS", 7) * 24 * time.Hour,
		ProductsPerPage: getEnvInt("PRODUCTS_PER_PAGE", 4),
		StripeBaseURL:   getEnv("STRIPE_BASE_URL", "https://api.stripe.com"),
		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		StripePublicKey: getEnv("STRIPE_API_KEY", ""),
		MediaBaseURL:    getEnv("MEDIA_BASE_URL", ""),
		MediaAPIKey:     getEnv("MEDIA_API_KEY", ""),
		MediaFolder:     getEnv("MEDIA_FOLDER", "gearmart"),
		MailBaseURL:     getEnv("MAIL_BASE_URL", ""),
		MailAPIToken:    getEnv("MAIL_API_TOKEN", ""),
		MailFrom:        getEnv("MAIL_FROM", "noreply@gearmart.example"),
	}

	if cfg.AppPort == "" {
		log.Fatal("APP_PORT must be set")
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	return cfg
}

// IsProduction reports whether the server runs with production error output.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback int) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return time.Duration(parsed)
		}
	}
	return time.Duration(fallback)
}
