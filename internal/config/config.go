// Package config loads cliparr configuration from an optional TOML file
// overlaid with environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/mitchellh/go-homedir"
)

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Sonarr  SonarrConfig  `toml:"sonarr"`
	Storage StorageConfig `toml:"storage"`
	Import  ImportConfig  `toml:"import"`
	Probe   ProbeConfig   `toml:"probe"`
	Events  EventsConfig  `toml:"events"`
}

type ServerConfig struct {
	Host     string `toml:"host" env:"HOST" env-default:"0.0.0.0"`
	Port     int    `toml:"port" env:"PORT" env-default:"5000"`
	LogLevel string `toml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Debug    bool   `toml:"debug" env:"DEBUG"`
}

type SonarrConfig struct {
	URL     string        `toml:"url" env:"SONARR_URL" env-default:"http://localhost:8989"`
	APIKey  string        `toml:"api_key" env:"SONARR_API_KEY"`
	Timeout time.Duration `toml:"timeout" env:"SONARR_TIMEOUT" env-default:"30s"`
}

type StorageConfig struct {
	DataDir    string `toml:"data_dir" env:"CLIPARR_DATA_DIR" env-default:"/data"`
	DBPath     string `toml:"db_path" env:"DB_PATH"`
	LogDir     string `toml:"log_dir" env:"LOG_DIR"`
	LogQueries bool   `toml:"log_queries" env:"DB_LOG_QUERIES"`
}

type ImportConfig struct {
	Mode     string        `toml:"mode" env:"CLIPARR_IMPORT_MODE" env-default:"none"`
	Interval time.Duration `toml:"interval" env:"CLIPARR_POLL_INTERVAL" env-default:"5m"`
}

type ProbeConfig struct {
	FFmpeg      string        `toml:"ffmpeg" env:"FFMPEG_PATH" env-default:"ffmpeg"`
	FFprobe     string        `toml:"ffprobe" env:"FFPROBE_PATH" env-default:"ffprobe"`
	Segment     time.Duration `toml:"segment" env:"CLIPARR_PROBE_SEGMENT" env-default:"180s"`
	Concurrency int           `toml:"concurrency" env:"CLIPARR_PROBE_CONCURRENCY" env-default:"4"`
}

type EventsConfig struct {
	Retention time.Duration `toml:"retention" env:"CLIPARR_EVENT_RETENTION" env-default:"720h"`
}

// Load reads the configuration file at path, substitutes ${VAR} references,
// then overlays environment variables and defaults. An empty path builds the
// configuration from the environment alone.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}

		content, missing := substituteEnvVars(string(data))
		if len(missing) > 0 {
			return nil, &ConfigError{Path: path, Missing: missing}
		}

		if _, err := toml.Decode(content, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := cfg.applyDerived(); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}

	return &cfg, nil
}

// applyDerived expands home-relative paths and fills paths that default
// relative to the data directory.
func (c *Config) applyDerived() error {
	var err error
	if c.Storage.DataDir, err = homedir.Expand(c.Storage.DataDir); err != nil {
		return fmt.Errorf("expand data_dir: %w", err)
	}
	if c.Storage.DBPath == "" {
		c.Storage.DBPath = filepath.Join(c.Storage.DataDir, "cliparr.db")
	} else if c.Storage.DBPath, err = homedir.Expand(c.Storage.DBPath); err != nil {
		return fmt.Errorf("expand db_path: %w", err)
	}
	if c.Storage.LogDir == "" {
		c.Storage.LogDir = filepath.Join(c.Storage.DataDir, "logs")
	} else if c.Storage.LogDir, err = homedir.Expand(c.Storage.LogDir); err != nil {
		return fmt.Errorf("expand log_dir: %w", err)
	}
	if c.Server.Debug {
		c.Server.LogLevel = "debug"
	}
	c.Import.Mode = strings.ToLower(strings.TrimSpace(c.Import.Mode))
	return nil
}

// Addr returns the host:port the daemon listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
// and reports the names that were not set.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	seen := make(map[string]bool)
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1]
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		if !seen[varName] {
			seen[varName] = true
			missing = append(missing, varName)
		}
		return match
	})
	return out, missing
}
