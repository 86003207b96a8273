package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit applied to one route pattern.
type EndpointConfig struct {
	Pattern string        // Route pattern; "*" matches one path segment, a trailing "/" matches any suffix
	Method  string        // HTTP method (GET, POST, etc.)
	Limit   int           // Maximum requests per window; 0 means unlimited
	Window  time.Duration // Time window
	Burst   int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration // Buckets untouched this long are dropped by cleanup
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// LoadConfig loads rate limiting configuration from RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		IdleTTL:         getEnvDuration("RATE_LIMIT_IDLE_TTL", time.Hour),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-route limits for the hiring API.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Credential checks: strictest
		{Pattern: "/auth/login", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},

		// Public submissions
		{Pattern: "/jobs/*/applications", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},

		// Offer rendering
		{Pattern: "/candidates/*/offer", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},

		// Board writes
		{Pattern: "/candidates/", Method: "PUT", Limit: 300, Window: time.Minute, Burst: 30},
		{Pattern: "/candidates/", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},

		// Long-lived streams: a handful of connects per minute is plenty
		{Pattern: "/events", Method: "GET", Limit: 30, Window: time.Minute, Burst: 10},
		{Pattern: "/ws/pipeline", Method: "GET", Limit: 30, Window: time.Minute, Burst: 10},

		// Health checks are never limited
		{Pattern: "/health", Method: "GET", Limit: 0},
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
