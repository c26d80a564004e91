package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Scraper   ScraperConfig
	Extract   ExtractConfig
	Export    ExportConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "127.0.0.1"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// MaxPages is the page pool capacity (max concurrent tabs).
	MaxPages int // default: 5

	// DefaultProxy is the default proxy URL for all requests.
	DefaultProxy string

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string
}

// ScraperConfig controls page rendering behavior.
type ScraperConfig struct {
	// DefaultTimeout is the per-request timeout.
	DefaultTimeout time.Duration // default: 30s

	// MaxTimeout is the maximum allowed timeout from the client.
	MaxTimeout time.Duration // default: 120s

	// BlockedResourceTypes lists resource types to block during rendering.
	// default: ["Image", "Stylesheet", "Font", "Media"]
	BlockedResourceTypes []string
}

// ExtractConfig controls the extraction engine.
type ExtractConfig struct {
	// SelectorsFile is an optional YAML file overriding the per-field
	// selector chains. Empty means built-in bol.com chains.
	SelectorsFile string
}

// ExportConfig controls the spreadsheet store.
type ExportConfig struct {
	// Path is the output workbook location.
	Path string // default: "bol_export.xlsx"

	// PendingTTL is how long an unconfirmed scrape stays editable.
	PendingTTL time.Duration // default: 1h
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false (single-operator tool)

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-identity rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per identity.
	RequestsPerSecond float64 // default: 2

	// Burst is the maximum burst size per identity.
	Burst int // default: 5
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("BOL_HOST", "127.0.0.1"),
			Port: envIntOr("BOL_PORT", 8080),
			Mode: envOr("BOL_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:     envBoolOr("BOL_HEADLESS", true),
			MaxPages:     envIntOr("BOL_MAX_PAGES", 5),
			DefaultProxy: os.Getenv("BOL_PROXY"),
			NoSandbox:    envBoolOr("BOL_NO_SANDBOX", false),
			BrowserBin:   os.Getenv("BOL_BROWSER_BIN"),
		},
		Scraper: ScraperConfig{
			DefaultTimeout: envDurationOr("BOL_DEFAULT_TIMEOUT", 30*time.Second),
			MaxTimeout:     envDurationOr("BOL_MAX_TIMEOUT", 120*time.Second),
			BlockedResourceTypes: envSliceOr("BOL_BLOCKED_RESOURCES", []string{
				"Image", "Stylesheet", "Font", "Media",
			}),
		},
		Extract: ExtractConfig{
			SelectorsFile: os.Getenv("BOL_SELECTORS_FILE"),
		},
		Export: ExportConfig{
			Path:       envOr("BOL_OUTPUT_XLSX", "bol_export.xlsx"),
			PendingTTL: envDurationOr("BOL_PENDING_TTL", time.Hour),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("BOL_AUTH_ENABLED", false),
			APIKeys: envSliceOr("BOL_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("BOL_RATE_RPS", 2.0),
			Burst:             envIntOr("BOL_RATE_BURST", 5),
		},
		Log: LogConfig{
			Level:  envOr("BOL_LOG_LEVEL", "info"),
			Format: envOr("BOL_LOG_FORMAT", "text"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
