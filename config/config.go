package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config collects every runtime setting, read once from the environment.
type Config struct {
	Port       string
	WebsiteURL string

	Log struct {
		Level  string
		Format string
	}

	Store struct {
		Backend  string // "file" or "dynamo"
		FilePath string
		Region   string
		Table    string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
		CacheTTL time.Duration
	}

	Email struct {
		AccessKey  string
		SecretKey  string
		Region     string
		From       string
		FromName   string
		AdminEmail string
	}

	Admin struct {
		Password string
	}

	Penpals struct {
		AllowedDomain string
		ExtraAllowed  []string
		DeliveryDelay time.Duration
		MinMessageLen int
		MinIntroLen   int
		CodeTTL       time.Duration
		SweepInterval time.Duration
	}
}

func New() *Config {
	cfg := &Config{}

	cfg.Port = getEnvDefault("PORT", "8080")
	cfg.WebsiteURL = getEnvDefault("WEBSITE_URL", "http://localhost:3000")

	// Logger
	cfg.Log.Level = getEnvDefault("LOG_LEVEL", "info")
	cfg.Log.Format = getEnvDefault("LOG_FORMAT", "text")

	// Store
	cfg.Store.Backend = getEnvDefault("STORE_BACKEND", "file")
	cfg.Store.FilePath = getEnvDefault("DB_FILE", "./database.json")
	cfg.Store.Region = getEnvDefault("AWS_REGION", "us-east-1")
	cfg.Store.Table = getEnvDefault("DB_TABLE", "Penpals")

	// Redis read cache (disabled when REDIS_ADDR is empty)
	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.Password = getEnvDefault("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)
	cfg.Redis.CacheTTL = getEnvDuration("STORE_CACHE_TTL", 5*time.Second)

	// Email
	cfg.Email.AccessKey = os.Getenv("SES_ACCESS_KEY")
	cfg.Email.SecretKey = os.Getenv("SES_SECRET_KEY")
	cfg.Email.Region = getEnvDefault("SES_REGION", "us-east-1")
	cfg.Email.From = getEnvDefault("EMAIL_FROM", "penpals@localhost")
	cfg.Email.FromName = getEnvDefault("EMAIL_FROM_NAME", "UCSC Penpals")
	cfg.Email.AdminEmail = getEnvDefault("ADMIN_EMAIL", cfg.Email.From)

	cfg.Admin.Password = getEnvDefault("ADMIN_PASSWORD", "admin123")

	// Matching and delivery rules
	cfg.Penpals.AllowedDomain = getEnvDefault("ALLOWED_DOMAIN", "ucsc.edu")
	cfg.Penpals.ExtraAllowed = splitList(os.Getenv("EXTRA_ALLOWED_EMAILS"))
	cfg.Penpals.DeliveryDelay = getEnvDuration("DELIVERY_DELAY", 12*time.Hour)
	cfg.Penpals.MinMessageLen = getEnvInt("MIN_MESSAGE_LENGTH", 10)
	cfg.Penpals.MinIntroLen = getEnvInt("MIN_INTRO_LENGTH", 20)
	cfg.Penpals.CodeTTL = getEnvDuration("CODE_TTL", 15*time.Minute)
	cfg.Penpals.SweepInterval = getEnvDuration("SWEEP_INTERVAL", 5*time.Minute)

	return cfg
}

func getEnvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
