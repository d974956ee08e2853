package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://www.ncei.noaa.gov/access/services/data/v1", cfg.NOAABaseURL)
	assert.Equal(t, "https://www.ncei.noaa.gov/pub/data/ghcn/daily", cfg.MirrorBaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 4, cfg.FetchConcurrency)
	assert.Equal(t, 6*time.Hour, cfg.FetchInterval)
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.Countries)
	assert.False(t, cfg.DownloadLargeFiles)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FETCH_COUNTRIES", "US, FR,SP")
	t.Setenv("FETCH_CONCURRENCY", "1")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("DOWNLOAD_LARGE_FILES", "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"US", "FR", "SP"}, cfg.Countries)
	assert.Equal(t, 1, cfg.FetchConcurrency)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.DownloadLargeFiles)
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("FETCH_INTERVAL", "often")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "FETCH_INTERVAL")
}
