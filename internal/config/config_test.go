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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileWithDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
jwt:
  secret: file-secret
  ttl: 30m
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, "places-backend", cfg.JWT.Issuer)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 40.7484474, cfg.Geocoding.FallbackLat)
	assert.False(t, cfg.AWS.ImagesEnabled())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
jwt:
  secret: file-secret
`)
	t.Setenv("PLACES_SERVER_PORT", "9090")
	t.Setenv("PLACES_JWT_SECRET", "env-secret")
	t.Setenv("PLACES_GEOCODING_API_KEY", "key")
	t.Setenv("PLACES_AUTH_REQUIRE_TOKEN", "true")
	t.Setenv("PLACES_AWS_S3_BUCKET", "place-images")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "key", cfg.Geocoding.APIKey)
	assert.True(t, cfg.Auth.RequireToken)
	assert.True(t, cfg.AWS.ImagesEnabled())
}

func TestLoad_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("PLACES_JWT_SECRET", "env-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [unclosed")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing jwt secret",
			content: "server:\n  port: 8080\n",
		},
		{
			name:    "unknown storage driver",
			content: "storage:\n  driver: mongo\njwt:\n  secret: s\n",
		},
		{
			name:    "postgres without database name",
			content: "storage:\n  driver: postgres\njwt:\n  secret: s\n",
		},
		{
			name:    "port out of range",
			content: "server:\n  port: 70000\njwt:\n  secret: s\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "places",
		Password: "secret",
		DBName:   "places",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=5432 user=places password=secret dbname=places sslmode=disable", c.DSN())
}

func TestLoad_ExplicitZeroKept(t *testing.T) {
	path := writeConfig(t, `
geocoding:
  fallback_lat: 0
  fallback_lng: 0
storage:
  seed: false
jwt:
  secret: s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Zero(t, cfg.Geocoding.FallbackLat)
	assert.Zero(t, cfg.Geocoding.FallbackLng)
	assert.Equal(t, "https://maps.googleapis.com", cfg.Geocoding.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Geocoding.Timeout)
}

func TestLoad_EnvZeroOverridesDefault(t *testing.T) {
	t.Setenv("PLACES_JWT_SECRET", "env-secret")
	t.Setenv("PLACES_GEOCODING_FALLBACK_LNG", "0")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Geocoding.FallbackLng)
	assert.Equal(t, 40.7484474, cfg.Geocoding.FallbackLat)
}
