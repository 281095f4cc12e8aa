package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, env map[string]string, opts ...Option) (Config, error) {
	t.Helper()
	opts = append([]Option{WithEnvMap(env), WithoutSystemEnv(), WithEnvFile("")}, opts...)
	return Load(context.Background(), opts...)
}

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := load(t, nil)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, EnvProduction, cfg.Site.Environment)
	assert.False(t, cfg.Dev())
	assert.Equal(t, "https://peakprinting.top", cfg.Site.BaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Analytics.WebsiteID)
}

func TestLoadWithOverrides(t *testing.T) {
	cfg, err := load(t, map[string]string{
		"PORT":                          "9000",
		"PEAK_WEB_PORT":                 "9090",
		"PEAK_WEB_READ_TIMEOUT":         "20s",
		"PEAK_WEB_ENV":                  "dev",
		"PEAK_WEB_BASE_URL":             "http://localhost:9090/",
		"PEAK_WEB_CATALOG_FILE":         "catalog.yaml",
		"PEAK_WEB_ANALYTICS_SCRIPT_URL": "https://umami.example/script.js",
		"PEAK_WEB_ANALYTICS_WEBSITE_ID": "site",
		"LOG_LEVEL":                     "DEBUG",
	})
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 20*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Dev())
	assert.Equal(t, "http://localhost:9090", cfg.Site.BaseURL)
	assert.Equal(t, "catalog.yaml", cfg.Paths.CatalogFile)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestPortFallsBackToPORT(t *testing.T) {
	cfg, err := load(t, map[string]string{"PORT": "7000"})
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Server.Port)
}

func TestDevFlags(t *testing.T) {
	cfg, err := load(t, map[string]string{"DEV": "1"})
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Site.Environment)

	cfg, err = load(t, map[string]string{"DEV": "1", "PEAK_WEB_ENV": "production"})
	require.NoError(t, err)
	assert.False(t, cfg.Dev(), "explicit environment wins over dev flags")

	cfg, err = load(t, map[string]string{"PEAK_WEB_DEV": "true"})
	require.NoError(t, err)
	assert.True(t, cfg.Dev())

	for _, env := range []map[string]string{
		{"DEV": "false"},
		{"DEV": "0"},
		{"PEAK_WEB_DEV": "false"},
		{"PEAK_WEB_DEV": "0"},
		{"DEV": "maybe"},
		{"DEV": ""},
	} {
		cfg, err := load(t, env)
		require.NoError(t, err)
		assert.Equal(t, EnvProduction, cfg.Site.Environment, "%v", env)
		assert.False(t, cfg.Dev(), "%v", env)
	}
}

func TestLoadValidationError(t *testing.T) {
	_, err := load(t, map[string]string{
		"PEAK_WEB_PORT":               "http",
		"PEAK_WEB_WRITE_TIMEOUT":      "soon",
		"PEAK_WEB_ENV":                "staging",
		"PEAK_WEB_BASE_URL":           "peakprinting.top",
		"PEAK_WEB_ANALYTICS_ENDPOINT": "https://umami.example",
	})
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{
		"Server.WriteTimeout",
		"Server.Port",
		"Site.Environment",
		"Site.BaseURL",
		"Analytics.WebsiteID",
	}, verr.Fields())
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nexport PEAK_WEB_PORT=7070\nPEAK_WEB_BASE_URL=\"https://example.com\"\nbroken line\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(context.Background(), WithoutSystemEnv(), WithEnvFile(path),
		WithEnvMap(map[string]string{"PEAK_WEB_BASE_URL": "https://override.example"}))
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "https://override.example", cfg.Site.BaseURL)

	cfg, err = Load(context.Background(), WithoutSystemEnv(), WithEnvFile(filepath.Join(dir, "missing.env")))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
}
