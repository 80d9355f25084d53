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

func TestLoad_EnvOverridesAndDefaults(t *testing.T) {
	t.Setenv("SOCIAL_API_BASE_URL", "https://social.example.com/")
	t.Setenv("SOCIAL_API_KEY", "secret")
	t.Setenv("PORT", "")
	t.Setenv("REDIS_URL", "")

	path := writeConfig(t, `
server:
  port: 9090
upstream:
  base_url: https://ignored.example.com
  timeout_seconds: 7
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://social.example.com", cfg.Upstream.BaseURL, "env wins and trailing slash is trimmed")
	assert.Equal(t, "secret", cfg.Upstream.APIKey)
	assert.Equal(t, 7*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://127.0.0.1:9090/api", cfg.Server.APIBaseURL)
	assert.Equal(t, 60*time.Second, cfg.Server.CacheTTL)
	assert.Equal(t, 100, cfg.Search.MaxQueryLength)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.Audit.Enabled)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("SOCIAL_API_BASE_URL", "https://social.example.com")
	t.Setenv("SOCIAL_API_KEY", "secret")
	t.Setenv("PORT", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"127.0.0.1", "::1"}, cfg.Server.TrustedProxies)
	assert.Zero(t, cfg.Upstream.Timeout, "no timeout configured means transport default")
}

func TestLoad_MissingCredentialsIsStartupFault(t *testing.T) {
	t.Setenv("SOCIAL_API_BASE_URL", "")
	t.Setenv("SOCIAL_API_KEY", "")

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SOCIAL_API_BASE_URL")
	assert.Contains(t, err.Error(), "SOCIAL_API_KEY")
}

func TestLoad_APIKeyIsNotReadFromFile(t *testing.T) {
	t.Setenv("SOCIAL_API_BASE_URL", "https://social.example.com")
	t.Setenv("SOCIAL_API_KEY", "")

	path := writeConfig(t, "upstream:\n  api_key: from-file\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("SOCIAL_API_BASE_URL", "https://social.example.com")
	t.Setenv("SOCIAL_API_KEY", "secret")

	path := writeConfig(t, "database:\n  driver: mysql\n  dsn: x\n")
	_, err := Load(path)
	require.Error(t, err)
}
