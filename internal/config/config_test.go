package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `{
		"port": 9090,
		"storage_backend": "redis",
		"redis_addr": "cache:6379",
		"login_delay": "250ms"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "redis", cfg.StorageBackend)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, 250*time.Millisecond, cfg.LoginDelay.Duration)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		_, err := LoadConfig("")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `{not json`))
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `{"login_delay": "soon"}`))
		assert.Error(t, err)
	})

	t.Run("numeric duration", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `{"login_delay": 500}`))
		assert.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero value", Config{}, false},
		{"defaults", Defaults(), false},
		{"negative port", Config{Port: -1}, true},
		{"port too large", Config{Port: 70000}, true},
		{"unknown backend", Config{StorageBackend: "s3"}, true},
		{"backend case insensitive", Config{StorageBackend: "Memory"}, false},
		{"postgres without url", Config{StorageBackend: "postgres"}, true},
		{"postgres with url", Config{StorageBackend: "postgres", DatabaseURL: "postgres://localhost/hirelink"}, false},
		{"negative delay", Config{LoginDelay: Duration{-time.Second}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_MergeWithDefaults(t *testing.T) {
	cfg := Config{Port: 3000, StorageBackend: "memory"}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, 3000, merged.Port)
	assert.Equal(t, "memory", merged.StorageBackend)
	assert.Equal(t, ".hirelink", merged.DataDir)
	assert.Equal(t, "localhost:6379", merged.RedisAddr)
	assert.Equal(t, 500*time.Millisecond, merged.LoginDelay.Duration)

	// original untouched
	assert.Empty(t, cfg.DataDir)
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv("HIRELINK_PORT", "7070")
	t.Setenv("HIRELINK_STORAGE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://db/hirelink")
	t.Setenv("HIRELINK_LOGIN_DELAY", "0s")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("HIRELINK_JOBS_FILE", "jobs.json")

	cfg := Defaults()
	cfg.ApplyEnv()

	assert.Equal(t, "jobs.json", cfg.JobsFile)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "postgres", cfg.StorageBackend)
	assert.Equal(t, "postgres://db/hirelink", cfg.DatabaseURL)
	assert.Equal(t, time.Duration(0), cfg.LoginDelay.Duration)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestConfig_ApplyEnv_IgnoresMalformed(t *testing.T) {
	t.Setenv("HIRELINK_PORT", "eighty")
	t.Setenv("HIRELINK_LOGIN_DELAY", "later")

	cfg := Defaults()
	cfg.ApplyEnv()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.LoginDelay.Duration)
}

func TestResolve(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		t.Setenv("HIRELINK_STORAGE", "")
		cfg, err := Resolve("")
		require.NoError(t, err)
		assert.Equal(t, "file", cfg.StorageBackend)
		assert.Equal(t, 8080, cfg.Port)
	})

	t.Run("file then env", func(t *testing.T) {
		t.Setenv("HIRELINK_STORAGE", "memory")
		path := writeConfig(t, `{"storage_backend": "redis", "port": 5000}`)

		cfg, err := Resolve(path)
		require.NoError(t, err)
		assert.Equal(t, "memory", cfg.StorageBackend)
		assert.Equal(t, 5000, cfg.Port)
	})

	t.Run("invalid result", func(t *testing.T) {
		t.Setenv("HIRELINK_STORAGE", "")
		t.Setenv("DATABASE_URL", "")
		path := writeConfig(t, `{"storage_backend": "postgres"}`)

		_, err := Resolve(path)
		assert.Error(t, err)
	})
}

func TestDuration_MarshalJSON(t *testing.T) {
	data, err := Duration{1500 * time.Millisecond}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1.5s"`, string(data))
}
