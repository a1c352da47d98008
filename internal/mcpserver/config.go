package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// list_segments defaults.
	ListLimit int
	MaxLimit  int

	// Input limits.
	MaxInlineSize int64
	MaxBodySize   int64

	// ExtendedFormats registers ipv6, uuid, date, date-time, int32 and int64
	// in addition to the built-in ipv4.
	ExtendedFormats bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from SWAGGERGUARD_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("SWAGGERGUARD_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("SWAGGERGUARD_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("SWAGGERGUARD_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    envDuration("SWAGGERGUARD_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("SWAGGERGUARD_CACHE_SWEEP_INTERVAL", 60*time.Second),
		ListLimit:          envInt("SWAGGERGUARD_LIST_LIMIT", 100),
		MaxLimit:           envInt("SWAGGERGUARD_MAX_LIMIT", 1000),
		MaxInlineSize:      envInt64("SWAGGERGUARD_MAX_INLINE_SIZE", 10*1024*1024),
		MaxBodySize:        envInt64("SWAGGERGUARD_MAX_BODY_SIZE", 10*1024*1024),
		ExtendedFormats:    envBool("SWAGGERGUARD_EXTENDED_FORMATS", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
