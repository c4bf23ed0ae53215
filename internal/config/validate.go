package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validImportModes = map[string]bool{
	"none": true, "import": true, "auto": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if u, err := url.Parse(c.Sonarr.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("sonarr.url: must be an absolute URL, got %q", c.Sonarr.URL))
	}
	if c.Sonarr.Timeout <= 0 {
		errs = append(errs, "sonarr.timeout: must be positive")
	}

	if c.Storage.DBPath == "" {
		errs = append(errs, "storage.db_path: required")
	}

	if !validImportModes[c.Import.Mode] {
		errs = append(errs, fmt.Sprintf("import.mode: must be one of none, import, auto; got %q", c.Import.Mode))
	}
	if c.Import.Interval <= 0 {
		errs = append(errs, "import.interval: must be positive")
	}

	if c.Probe.Segment <= 0 {
		errs = append(errs, "probe.segment: must be positive")
	}
	if c.Probe.Concurrency < 1 {
		errs = append(errs, fmt.Sprintf("probe.concurrency: must be at least 1, got %d", c.Probe.Concurrency))
	}

	return errs
}
