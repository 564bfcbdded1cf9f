package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv string
	Port   string

	// DatabaseURL is optional; without it the credential store and the
	// store-backed authorization gate are disabled.
	DatabaseURL string

	GatewayAPIKey  string
	GatewayBaseURL string
	ImageModel     string
	VideoModel     string

	StoragePath    string
	StorageBaseURL string

	GeoIPDBPath        string
	IntentKeywordsPath string
	AllowedOrigins     []string

	PollInterval     time.Duration
	MaxPolls         int
	CreateResolution string
	ExtendResolution string
	AspectRatio      string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		GatewayAPIKey:      os.Getenv("GATEWAY_API_KEY"),
		GatewayBaseURL:     getEnv("GATEWAY_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		ImageModel:         getEnv("GATEWAY_IMAGE_MODEL", "gemini-2.5-flash-image"),
		VideoModel:         getEnv("GATEWAY_VIDEO_MODEL", "veo-3.1-generate-preview"),
		StoragePath:        getEnv("STORAGE_PATH", "./storage"),
		StorageBaseURL:     getEnv("STORAGE_BASE_URL", "http://localhost:8080/static"),
		GeoIPDBPath:        os.Getenv("GEOIP_DB_PATH"),
		IntentKeywordsPath: os.Getenv("INTENT_KEYWORDS_PATH"),
		AllowedOrigins:     splitCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		PollInterval:       time.Second * time.Duration(getEnvInt("JOB_POLL_INTERVAL_SECONDS", 8)),
		MaxPolls:           getEnvInt("JOB_MAX_POLLS", 45),
		CreateResolution:   getEnv("VIDEO_CREATE_RESOLUTION", "1080p"),
		ExtendResolution:   getEnv("VIDEO_EXTEND_RESOLUTION", "720p"),
		AspectRatio:        getEnv("VIDEO_ASPECT_RATIO", "16:9"),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 600)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("JOB_POLL_INTERVAL_SECONDS must be positive")
	}
	if cfg.MaxPolls <= 0 {
		return nil, fmt.Errorf("JOB_MAX_POLLS must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
