package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SENTRYWATCH_API_BASE", "SENTRYWATCH_API_HOST", "SENTRYWATCH_LOG_LEVEL", "SENTRYWATCH_LISTEN"} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIHost, cfg.API.Host)
	assert.Equal(t, "/api", cfg.API.BasePath)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Sync.Interval)
	assert.Equal(t, 3*time.Second, cfg.Sync.SettleDelay)
	assert.Equal(t, 50, cfg.Sync.IncidentLimit)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "http://localhost:8000/api", cfg.API.BaseURL())
}

func TestLoad_FileValues(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  host: http://backend:8000
  base_path: /v1
  timeout: 4s
sync:
  interval: 1m
  settle_delay: 1500ms
  incident_limit: 20
log:
  level: debug
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://backend:8000/v1", cfg.API.BaseURL())
	assert.Equal(t, 4*time.Second, cfg.API.Timeout)
	assert.Equal(t, time.Minute, cfg.Sync.Interval)
	assert.Equal(t, 1500*time.Millisecond, cfg.Sync.SettleDelay)
	assert.Equal(t, 20, cfg.Sync.IncidentLimit)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SENTRYWATCH_API_BASE", "https://sentinel.example.com/api/")
	t.Setenv("SENTRYWATCH_LOG_LEVEL", "WARN")
	t.Setenv("SENTRYWATCH_LISTEN", "0.0.0.0:9999")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://sentinel.example.com/api", cfg.API.BaseURL())
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "0.0.0.0:9999", cfg.Server.Listen)
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sync:
  interval: 2s
  settle_delay: 5s
`), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SettleDelay")
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [oops"), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Sync.IncidentLimit = 25
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25, loaded.Sync.IncidentLimit)
	assert.Equal(t, cfg.Sync.Interval, loaded.Sync.Interval)
}

func TestBaseURL(t *testing.T) {
	tests := []struct {
		host, base, want string
	}{
		{"http://localhost:8000", "/api", "http://localhost:8000/api"},
		{"http://localhost:8000/", "api/", "http://localhost:8000/api"},
		{"http://localhost:8000", "http://other:1234/x", "http://other:1234/x"},
		{"http://localhost:8000", "/", "http://localhost:8000"},
	}
	for _, tt := range tests {
		got := APIConfig{Host: tt.host, BasePath: tt.base}.BaseURL()
		assert.Equal(t, tt.want, got, "host=%s base=%s", tt.host, tt.base)
	}
}
