package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:5000", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Board.TTL)
	assert.Equal(t, "ko", cfg.Locale)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := writeFile(t, "config.yaml", `
api:
  base_url: https://reports.example.com
  timeout: 5s
server:
  host: 0.0.0.0
  port: "9000"
board:
  ttl: 1h
brands_file: /etc/sales-atlas/brands.ini
`)
	t.Setenv("SALES_ATLAS_API_COOKIE", "session=abc")
	t.Setenv("SERVER_PORT", "9100")

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "https://reports.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "session=abc", cfg.API.Cookie)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Board.TTL)
	assert.Equal(t, "/etc/sales-atlas/brands.ini", cfg.BrandsFile)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewBrandRegistry(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r, err := NewBrandRegistry("")
		require.NoError(t, err)

		b, ok := r.Lookup("nine")
		assert.True(t, ok)
		assert.Equal(t, "NINE ACCORD", b.Name)
		assert.Len(t, r.Brands(), 2)

		_, ok = r.Lookup("acme")
		assert.False(t, ok)
	})

	t.Run("ini file", func(t *testing.T) {
		path := writeFile(t, "brands.ini", "[nine]\nname = NINE ACCORD\n\n[Acme]\n")
		r, err := NewBrandRegistry(path)
		require.NoError(t, err)

		b, ok := r.Lookup("acme")
		require.True(t, ok)
		assert.Equal(t, "ACME", b.Name)
		_, ok = r.Lookup("curu")
		assert.False(t, ok)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, "brands.ini", "")
		_, err := NewBrandRegistry(path)
		assert.Error(t, err)
	})
}
