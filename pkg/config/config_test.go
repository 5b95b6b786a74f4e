package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, "./familyconnect-data", cfg.Server.DBPath)
	assert.True(t, cfg.AssistantOnline())
	assert.Equal(t, 20*time.Second, cfg.Assistant.Timeout.Duration())
	assert.Equal(t, int64(64<<10), cfg.Assistant.MaxResponseBytes.Int64())
	assert.True(t, cfg.Retention.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Retention.Lifetime.Duration())
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  address: 0.0.0.0
  port: 9090
assistant:
  model: test-model
  timeout: 5s
  max_response_bytes: 128KB
  online: false
retention:
  cron: "0 * * * *"
  lifetime: 12h
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.Addr())
	assert.Equal(t, "test-model", cfg.Assistant.Model)
	assert.Equal(t, 5*time.Second, cfg.Assistant.Timeout.Duration())
	assert.Equal(t, int64(128_000), cfg.Assistant.MaxResponseBytes.Int64())
	assert.False(t, cfg.AssistantOnline())
	assert.Equal(t, 12*time.Hour, cfg.Retention.Lifetime.Duration())

	// unset fields keep their defaults
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "./familyconnect-data", cfg.Server.DBPath)
}

func TestDurationAcceptsNumericSeconds(t *testing.T) {
	path := writeConfig(t, "assistant:\n  timeout: 30\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Assistant.Timeout.Duration())
}

func TestLoadRejectsBadFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeConfig(t, "server: [not a map")
	_, err = Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("FAMILYCONNECT_ADDR", "10.0.0.1:7070")
	t.Setenv("FAMILYCONNECT_DB", "/tmp/fc-db")
	t.Setenv("FAMILYCONNECT_OFFLINE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1:7070", cfg.Addr())
	assert.Equal(t, "/tmp/fc-db", cfg.Server.DBPath)
	assert.False(t, cfg.AssistantOnline())
}

func TestAssistantAPIKey(t *testing.T) {
	cfg := Default()
	t.Setenv("FAMILYCONNECT_ASSISTANT_API_KEY", "sekrit")
	assert.Equal(t, "sekrit", cfg.AssistantAPIKey())

	cfg.Assistant.APIKeyEnv = ""
	assert.Empty(t, cfg.AssistantAPIKey())
}
