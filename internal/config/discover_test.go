package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/cliparr/config.toml", DefaultPath())
}

func TestDefaultPath_Home(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Contains(t, DefaultPath(), filepath.Join(".config", "cliparr", "config.toml"))
}

func TestDiscover_EnvVar(t *testing.T) {
	path := writeConfig(t, "[server]\n")
	t.Setenv("CLIPARR_CONFIG", path)

	got, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestDiscover_EnvVarMissingFile(t *testing.T) {
	t.Setenv("CLIPARR_CONFIG", "/nonexistent/config.toml")

	_, err := Discover()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLIPARR_CONFIG")
}

func TestDiscover_CurrentDir(t *testing.T) {
	origDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	t.Setenv("CLIPARR_CONFIG", "")
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "config.toml"), []byte("[server]\n"), 0644))
	require.NoError(t, os.Chdir(tmp))

	got, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, "./config.toml", got)
}

func TestDiscover_NotFound(t *testing.T) {
	origDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	t.Setenv("CLIPARR_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	require.NoError(t, os.Chdir(t.TempDir()))

	_, err = Discover()
	if _, statErr := os.Stat("/etc/cliparr/config.toml"); statErr == nil {
		t.Skip("system config present")
	}
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}
