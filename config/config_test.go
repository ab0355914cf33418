package config_test

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lookescolar-server/config"
	"testing"
	"time"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := config.ParseConfig([]byte(`serverAddr: ":9000"`))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ServerAddr)
	assert.Equal(t, 1600, cfg.Images.MaxDimension)
	assert.Equal(t, 72, cfg.Images.Quality)
	assert.Equal(t, 3, cfg.Images.BatchConcurrency)
	assert.Equal(t, 5*time.Minute, cfg.TTL.Features())
	assert.Equal(t, 256, cfg.Tokens.AccessLogQueue)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestParseConfig_Overrides(t *testing.T) {
	raw := `
databaseConfig:
  dsn: "postgres://localhost/photos"
images:
  max_dimension: 2048
  quality: 85
  batch_concurrency: 6
TTL:
  feature_flags: 60
webhook:
  secret: "whsec"
`
	cfg, err := config.ParseConfig([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/photos", cfg.DatabaseConfig.DSN)
	assert.Equal(t, 2048, cfg.Images.MaxDimension)
	assert.Equal(t, 85, cfg.Images.Quality)
	assert.Equal(t, 6, cfg.Images.BatchConcurrency)
	assert.Equal(t, time.Minute, cfg.TTL.Features())
	assert.Equal(t, "whsec", cfg.Webhook.Secret)
}

func TestParseConfig_InvalidQualityFallsBack(t *testing.T) {
	cfg, err := config.ParseConfig([]byte("images:\n  quality: 150\n"))
	require.NoError(t, err)
	assert.Equal(t, 72, cfg.Images.Quality)
}

func TestParseConfig_BrokenYAML(t *testing.T) {
	_, err := config.ParseConfig([]byte("serverAddr: [unterminated"))
	assert.Error(t, err)
}
