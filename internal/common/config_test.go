package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, 15*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, 3, cfg.HTTP.MaxRetries)
	assert.Equal(t, 8, cfg.Enrich.APIBatchSize)
	assert.Equal(t, 3, cfg.Enrich.ScrapeBatchSize)
	assert.Equal(t, 750*time.Millisecond, cfg.Enrich.BatchDelay)
	assert.Equal(t, 50, cfg.Enrich.MatchThreshold)
	assert.Equal(t, "pdftotext", cfg.PDF.Pdftotext)

	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "2s")
	t.Setenv("HTTP_RETRIES", "5")
	t.Setenv("ENRICH_API_BATCH", "16")
	t.Setenv("MATCH_THRESHOLD", "70")
	t.Setenv("PDFTOTEXT_BIN", "/opt/poppler/bin/pdftotext")

	cfg := LoadConfig()
	assert.Equal(t, 2*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, 5, cfg.HTTP.MaxRetries)
	assert.Equal(t, 16, cfg.Enrich.APIBatchSize)
	assert.Equal(t, 70, cfg.Enrich.MatchThreshold)
	assert.Equal(t, "/opt/poppler/bin/pdftotext", cfg.PDF.Pdftotext)
}

func TestLoadConfigIgnoresMalformedValues(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "soon")
	t.Setenv("HTTP_RETRIES", "many")

	cfg := LoadConfig()
	assert.Equal(t, 15*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, 3, cfg.HTTP.MaxRetries)
}

func TestConfigValidate(t *testing.T) {
	base := func() *Config {
		c := LoadConfig()
		return c
	}

	c := base()
	c.HTTP.RequestTimeout = 0
	assert.Error(t, c.Validate())

	c = base()
	c.Enrich.APIBatchSize = 0
	assert.Error(t, c.Validate())

	c = base()
	c.Enrich.MatchThreshold = 101
	assert.Error(t, c.Validate())

	assert.NoError(t, base().Validate())
}
