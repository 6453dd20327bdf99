package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Session / cookies
	SessionTTL        time.Duration
	SessionCookieName string
	CSRFCookieName    string
	CookieDomain      string

	// Rate limiting ("N-PERIOD" format, e.g. "120-M")
	PublicRateLimit string
	AdminRateLimit  string
	AuthRateLimit   string

	// Login lockout
	LoginMaxAttempts     int64
	LoginLockoutDuration time.Duration

	// API tokens for programmatic clients
	APITokenSecret         string
	APITokenIssuer         string
	APITokenExpiryDuration time.Duration

	// External OAuth provider
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`

	// Storefront
	DefaultTimezone string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("SESSION_TTL", "12h")
	viper.SetDefault("SESSION_COOKIE_NAME", "sid")
	viper.SetDefault("CSRF_COOKIE_NAME", "csrf_token")
	viper.SetDefault("COOKIE_DOMAIN", "")
	viper.SetDefault("PUBLIC_RATE_LIMIT", "120-M")
	viper.SetDefault("ADMIN_RATE_LIMIT", "60-M")
	viper.SetDefault("AUTH_RATE_LIMIT", "10-M")
	viper.SetDefault("LOGIN_MAX_ATTEMPTS", 5)
	viper.SetDefault("LOGIN_LOCKOUT_DURATION", "15m")
	viper.SetDefault("API_TOKEN_SECRET", "default_insecure_api_token_secret_please_change_this")
	viper.SetDefault("API_TOKEN_ISSUER", "sarraf-backend")
	viper.SetDefault("API_TOKEN_EXPIRY_DURATION", "720h")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("DEFAULT_TIMEZONE", "Asia/Riyadh")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.SessionTTL = parseDurationOr("SESSION_TTL", 12*time.Hour)
	cfg.SessionCookieName = viper.GetString("SESSION_COOKIE_NAME")
	cfg.CSRFCookieName = viper.GetString("CSRF_COOKIE_NAME")
	cfg.CookieDomain = viper.GetString("COOKIE_DOMAIN")

	cfg.PublicRateLimit = viper.GetString("PUBLIC_RATE_LIMIT")
	cfg.AdminRateLimit = viper.GetString("ADMIN_RATE_LIMIT")
	cfg.AuthRateLimit = viper.GetString("AUTH_RATE_LIMIT")

	cfg.LoginMaxAttempts = viper.GetInt64("LOGIN_MAX_ATTEMPTS")
	cfg.LoginLockoutDuration = parseDurationOr("LOGIN_LOCKOUT_DURATION", 15*time.Minute)

	cfg.APITokenSecret = viper.GetString("API_TOKEN_SECRET")
	if cfg.APITokenSecret == "default_insecure_api_token_secret_please_change_this" {
		log.Println("Warning: API_TOKEN_SECRET not set. Using default insecure key.")
	}
	cfg.APITokenIssuer = viper.GetString("API_TOKEN_ISSUER")
	cfg.APITokenExpiryDuration = parseDurationOr("API_TOKEN_EXPIRY_DURATION", 30*24*time.Hour)

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		log.Println("Warning: Google OAuth credentials not set. Google sign-in will not function.")
	}

	cfg.DefaultTimezone = viper.GetString("DEFAULT_TIMEZONE")

	return cfg, nil
}

func parseDurationOr(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s (%q). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}
