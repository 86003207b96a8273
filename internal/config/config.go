// Package config provides configuration loading and validation for the hire-link service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Storage backends accepted in StorageBackend.
var validBackends = map[string]bool{
	"":         true,
	"file":     true,
	"memory":   true,
	"redis":    true,
	"postgres": true,
}

// Config is the service configuration. It can be loaded from a JSON file and is
// then overlaid with environment variables. All fields are optional.
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Storage
	StorageBackend string `json:"storage_backend,omitempty"` // file, memory, redis or postgres
	DataDir        string `json:"data_dir,omitempty"`        // Directory for the file backend
	RedisAddr      string `json:"redis_addr,omitempty"`      // host:port for the redis backend
	RedisPassword  string `json:"redis_password,omitempty"`  // Redis AUTH password
	DatabaseURL    string `json:"database_url,omitempty"`    // PostgreSQL connection URL

	// Behavior
	LoginDelay Duration `json:"login_delay,omitempty"` // Simulated login latency, e.g. "500ms"
	JobsFile   string   `json:"jobs_file,omitempty"`   // JSON job catalog; empty uses the built-in one
}

// Duration is a time.Duration that reads and writes as a Go duration string in JSON.
type Duration struct {
	time.Duration
}

// MarshalJSON implements json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"500ms\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Defaults returns the configuration used when nothing else is specified.
func Defaults() Config {
	return Config{
		Port:           8080,
		StorageBackend: "file",
		DataDir:        ".hirelink",
		RedisAddr:      "localhost:6379",
		LoginDelay:     Duration{500 * time.Millisecond},
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields with any of HIRELINK_PORT, HIRELINK_STORAGE,
// HIRELINK_DATA_DIR, REDIS_ADDR, REDIS_PASSWORD, DATABASE_URL,
// HIRELINK_LOGIN_DELAY and HIRELINK_JOBS_FILE that are set.
func (c *Config) ApplyEnv() {
	c.Port = getEnvInt("HIRELINK_PORT", c.Port)
	c.StorageBackend = getEnvString("HIRELINK_STORAGE", c.StorageBackend)
	c.DataDir = getEnvString("HIRELINK_DATA_DIR", c.DataDir)
	c.RedisAddr = getEnvString("REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = getEnvString("REDIS_PASSWORD", c.RedisPassword)
	c.DatabaseURL = getEnvString("DATABASE_URL", c.DatabaseURL)
	c.LoginDelay.Duration = getEnvDuration("HIRELINK_LOGIN_DELAY", c.LoginDelay.Duration)
	c.JobsFile = getEnvString("HIRELINK_JOBS_FILE", c.JobsFile)
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}

	backend := strings.ToLower(c.StorageBackend)
	if !validBackends[backend] {
		return fmt.Errorf("config error: unknown 'storage_backend' %q", c.StorageBackend)
	}
	if backend == "postgres" && c.DatabaseURL == "" {
		return fmt.Errorf("config error: 'database_url' is required for the postgres backend")
	}

	if c.LoginDelay.Duration < 0 {
		return fmt.Errorf("config error: 'login_delay' must be non-negative")
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.StorageBackend == "" {
		result.StorageBackend = defaults.StorageBackend
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.RedisPassword == "" {
		result.RedisPassword = defaults.RedisPassword
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// A zero delay is a meaningful setting only when given explicitly via env,
	// so an unset file value still takes the default.
	if result.LoginDelay.Duration == 0 {
		result.LoginDelay = defaults.LoginDelay
	}

	return result
}

// Resolve loads the optional config file at path, merges defaults and applies env.
// An empty path skips the file.
func Resolve(path string) (Config, error) {
	var fileCfg Config
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		fileCfg = *loaded
	}

	cfg := fileCfg.MergeWithDefaults(Defaults())
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
