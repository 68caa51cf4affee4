package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultEmailDomain = "northeastern.edu"
	DefaultLoginDelay  = 1500 * time.Millisecond
	DefaultDraftTTL    = 30 * time.Minute
)

// AppConfig holds the settings read from the environment at startup.
type AppConfig struct {
	Port           string
	ReleaseMode    bool
	EmailDomain    string
	LoginDelay     time.Duration
	DraftTTL       time.Duration
	JWTSecret      string
	JWTExpireHours int
	MonitorToken   string
}

// LoadAppConfig reads AppConfig from environment variables, applying defaults
// for anything unset or malformed.
func LoadAppConfig() AppConfig {
	cfg := AppConfig{
		Port:           os.Getenv("SERVER_PORT"),
		ReleaseMode:    os.Getenv("GIN_MODE") == "release",
		EmailDomain:    strings.TrimPrefix(strings.TrimSpace(os.Getenv("ALLOWED_EMAIL_DOMAIN")), "@"),
		LoginDelay:     durationEnv("LOGIN_DELAY", DefaultLoginDelay),
		DraftTTL:       durationEnv("DRAFT_TTL", DefaultDraftTTL),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		MonitorToken:   os.Getenv("MONITOR_TOKEN"),
		JWTExpireHours: 24,
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.EmailDomain == "" {
		cfg.EmailDomain = DefaultEmailDomain
	}
	if hours, err := strconv.Atoi(os.Getenv("JWT_EXPIRE_HOURS")); err == nil && hours > 0 {
		cfg.JWTExpireHours = hours
	}
	if cfg.JWTSecret == "" {
		// Sessions then only survive until restart, which is all the simulated login needs.
		cfg.JWTSecret = uuid.NewString()
		log.Println("Warning: JWT_SECRET not set, using a per-process session secret")
	}

	return cfg
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		log.Printf("Warning: invalid %s %q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}
