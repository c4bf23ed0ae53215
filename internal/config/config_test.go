package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"HOST", "PORT", "LOG_LEVEL", "DEBUG",
	"SONARR_URL", "SONARR_API_KEY", "SONARR_TIMEOUT",
	"CLIPARR_DATA_DIR", "DB_PATH", "LOG_DIR", "DB_LOG_QUERIES",
	"CLIPARR_IMPORT_MODE", "CLIPARR_POLL_INTERVAL",
	"FFMPEG_PATH", "FFPROBE_PATH", "CLIPARR_PROBE_SEGMENT", "CLIPARR_PROBE_CONCURRENCY",
	"CLIPARR_EVENT_RETENTION",
}

// clearEnv unsets every variable the loader reads and restores them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		if v, ok := os.LookupEnv(k); ok {
			require.NoError(t, os.Unsetenv(k))
			t.Cleanup(func() { _ = os.Setenv(k, v) })
		}
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_EnvOnlyDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "http://localhost:8989", cfg.Sonarr.URL)
	assert.Empty(t, cfg.Sonarr.APIKey, "missing API key must not fail startup")
	assert.Equal(t, 30*time.Second, cfg.Sonarr.Timeout)
	assert.Equal(t, "/data", cfg.Storage.DataDir)
	assert.Equal(t, "/data/cliparr.db", cfg.Storage.DBPath)
	assert.Equal(t, "/data/logs", cfg.Storage.LogDir)
	assert.Equal(t, "none", cfg.Import.Mode)
	assert.Equal(t, 5*time.Minute, cfg.Import.Interval)
	assert.Equal(t, 180*time.Second, cfg.Probe.Segment)
	assert.Equal(t, 4, cfg.Probe.Concurrency)
	assert.Equal(t, "0.0.0.0:5000", cfg.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SONARR_URL", "http://sonarr:8989")
	t.Setenv("SONARR_API_KEY", "secret")
	t.Setenv("CLIPARR_DATA_DIR", "/srv/cliparr")
	t.Setenv("CLIPARR_IMPORT_MODE", "AUTO")
	t.Setenv("DEBUG", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://sonarr:8989", cfg.Sonarr.URL)
	assert.Equal(t, "secret", cfg.Sonarr.APIKey)
	assert.Equal(t, "/srv/cliparr/cliparr.db", cfg.Storage.DBPath)
	assert.Equal(t, "auto", cfg.Import.Mode)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[server]
port = 8080

[sonarr]
url = "http://file:8989"
timeout = "10s"

[storage]
db_path = "/tmp/cliparr-test.db"

[import]
mode = "import"
interval = "1m"
`)
	t.Setenv("SONARR_URL", "http://env:8989")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://env:8989", cfg.Sonarr.URL, "environment overrides file")
	assert.Equal(t, 10*time.Second, cfg.Sonarr.Timeout)
	assert.Equal(t, "/tmp/cliparr-test.db", cfg.Storage.DBPath)
	assert.Equal(t, "import", cfg.Import.Mode)
	assert.Equal(t, time.Minute, cfg.Import.Interval)
}

func TestLoad_SubstitutesEnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_CLIPARR_KEY", "from-env")
	path := writeConfig(t, `
[sonarr]
api_key = "${TEST_CLIPARR_KEY}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Sonarr.APIKey)
}

func TestLoad_MissingEnvVar(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Unsetenv("TEST_CLIPARR_MISSING"))
	path := writeConfig(t, `
[sonarr]
api_key = "${TEST_CLIPARR_MISSING}"
`)

	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"TEST_CLIPARR_MISSING"}, cfgErr.Missing)
	assert.Contains(t, err.Error(), "TEST_CLIPARR_MISSING")
}

func TestLoad_ValidationError(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[server]
port = 70000

[import]
mode = "sometimes"
`)

	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Len(t, cfgErr.Errors, 2)
	assert.Contains(t, err.Error(), "server.port")
	assert.Contains(t, err.Error(), "import.mode")
}

func TestLoad_InvalidTOML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "[server\nport = ")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:  ServerConfig{Port: 5000, LogLevel: "info"},
			Sonarr:  SonarrConfig{URL: "http://localhost:8989", Timeout: time.Second},
			Storage: StorageConfig{DBPath: "/data/cliparr.db"},
			Import:  ImportConfig{Mode: "none", Interval: time.Minute},
			Probe:   ProbeConfig{Segment: time.Minute, Concurrency: 1},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad log level", func(c *Config) { c.Server.LogLevel = "loud" }, "server.log_level"},
		{"relative url", func(c *Config) { c.Sonarr.URL = "sonarr" }, "sonarr.url"},
		{"zero timeout", func(c *Config) { c.Sonarr.Timeout = 0 }, "sonarr.timeout"},
		{"no db path", func(c *Config) { c.Storage.DBPath = "" }, "storage.db_path"},
		{"zero interval", func(c *Config) { c.Import.Interval = 0 }, "import.interval"},
		{"zero concurrency", func(c *Config) { c.Probe.Concurrency = 0 }, "probe.concurrency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			errs := cfg.Validate()
			if tt.want == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0], tt.want)
		})
	}
}

func TestConfigError(t *testing.T) {
	e := &ConfigError{Path: "/etc/cliparr/config.toml"}
	assert.False(t, e.HasErrors())
	assert.Empty(t, e.Error())

	e.Missing = []string{"API_KEY"}
	e.Errors = []string{"server.port: bad"}
	assert.True(t, e.HasErrors())
	assert.Contains(t, e.Error(), "/etc/cliparr/config.toml")
	assert.Contains(t, e.Error(), "missing environment variables: API_KEY")
	assert.Contains(t, e.Error(), "  - server.port: bad")
}
