package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	DatabaseURL        string
	CorsAllowedOrigins []string
	// TrustedProxies may set X-Forwarded-For / X-Real-IP. Empty means none.
	TrustedProxies []string
	MaxBodyBytes   int64

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	JWTSecret    string
	JWTExpiresIn time.Duration
	BcryptCost   int

	DefaultAdmin DefaultAdmin

	SMTP SMTP

	UploadDir         string
	BlogDefaultAuthor string

	LogLevel  string
	LogFormat string

	RateLimits RateLimits
}

// DefaultAdmin is the account created on first boot when no admin exists.
type DefaultAdmin struct {
	Username string
	Email    string
	Password string
	Name     string
}

type SMTP struct {
	Host          string
	Port          int
	User          string
	Password      string
	From          string
	Secure        bool
	VerifyTimeout time.Duration
	NotifyEmail   string
	SiteName      string
}

// RateLimit is a request budget per client address within a rolling window.
type RateLimit struct {
	Requests int
	Window   time.Duration
}

type RateLimits struct {
	Subscribe RateLimit
	Contact   RateLimit
	Comment   RateLimit
	Login     RateLimit
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	adminUser := getEnv("DEFAULT_ADMIN_USERNAME", "admin")
	smtpUser := getEnv("SMTP_USER", "")

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		CorsAllowedOrigins: corsOrigins(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		TrustedProxies:     getEnvList("TRUSTED_PROXIES"),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 8<<20)),
		ReadTimeout:        getEnvDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:       getEnvDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:        getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTExpiresIn:       getEnvDuration("JWT_EXPIRES_IN", 24*time.Hour),
		BcryptCost:         getEnvInt("BCRYPT_COST", 10),
		DefaultAdmin: DefaultAdmin{
			Username: adminUser,
			Email:    strings.ToLower(getEnv("DEFAULT_ADMIN_EMAIL", adminUser+"@admin.local")),
			Password: getEnv("DEFAULT_ADMIN_PASSWORD", ""),
			Name:     getEnv("DEFAULT_ADMIN_NAME", "Admin"),
		},
		SMTP: SMTP{
			Host:          getEnv("SMTP_HOST", ""),
			Port:          getEnvInt("SMTP_PORT", 587),
			User:          smtpUser,
			Password:      getEnv("SMTP_PASS", ""),
			From:          getEnv("SMTP_FROM", smtpUser),
			Secure:        getEnvBool("SMTP_SECURE", false),
			VerifyTimeout: getEnvDuration("SMTP_VERIFY_TIMEOUT", 10*time.Second),
			NotifyEmail:   getEnv("NOTIFY_EMAIL", smtpUser),
			SiteName:      getEnv("SITE_NAME", "Portfolio"),
		},
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
		BlogDefaultAuthor: getEnv("BLOG_DEFAULT_AUTHOR", "Admin"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		RateLimits: RateLimits{
			Subscribe: getRateLimit("SUBSCRIBE", 5, 15*time.Minute),
			Contact:   getRateLimit("CONTACT", 5, 15*time.Minute),
			Comment:   getRateLimit("COMMENT", 10, 15*time.Minute),
			Login:     getRateLimit("LOGIN", 5, 15*time.Minute),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if u, err := url.Parse(c.DatabaseURL); err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
		return errors.New("DATABASE_URL must be a postgres:// URL")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	if c.JWTExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost)
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("MAX_BODY_BYTES must be positive")
	}
	for name, rl := range map[string]RateLimit{
		"SUBSCRIBE": c.RateLimits.Subscribe,
		"CONTACT":   c.RateLimits.Contact,
		"COMMENT":   c.RateLimits.Comment,
		"LOGIN":     c.RateLimits.Login,
	} {
		if rl.Requests < 1 || rl.Window <= 0 {
			return fmt.Errorf("RATE_LIMIT_%s must allow at least one request per positive window", name)
		}
	}
	return nil
}

func getRateLimit(name string, requests int, window time.Duration) RateLimit {
	return RateLimit{
		Requests: getEnvInt("RATE_LIMIT_"+name, requests),
		Window:   getEnvDuration("RATE_LIMIT_"+name+"_WINDOW", window),
	}
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	if value := getEnv(key, ""); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := getEnv(key, ""); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := getEnv(key, ""); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvList reads a comma-separated list; unset or blank means nil.
func getEnvList(key string) []string {
	return splitCSV(getEnv(key, ""))
}

// corsOrigins falls back to any origin when the list is blank.
func corsOrigins(value string) []string {
	if origins := splitCSV(value); len(origins) > 0 {
		return origins
	}
	return []string{"*"}
}

func splitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}
