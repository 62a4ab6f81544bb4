package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	HTTP   HTTPConfig
	Enrich EnrichConfig
	PDF    PDFConfig
}

// HTTPConfig holds settings for outbound vendor requests.
type HTTPConfig struct {
	RequestTimeout time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	UserAgent      string
}

// EnrichConfig holds batching and matching behavior for the enrichment stage.
type EnrichConfig struct {
	APIBatchSize    int
	ScrapeBatchSize int
	BatchDelay      time.Duration
	LookupTimeout   time.Duration
	MatchThreshold  int
}

// PDFConfig holds external-tool settings for PDF text extraction.
type PDFConfig struct {
	Pdftotext string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			RequestTimeout: getEnvAsDuration("HTTP_TIMEOUT", 15*time.Second),
			MaxRetries:     getEnvAsInt("HTTP_RETRIES", 3),
			RetryBackoff:   getEnvAsDuration("HTTP_BACKOFF", 500*time.Millisecond),
			UserAgent:      getEnv("HTTP_USER_AGENT", "frame-intake/1.0"),
		},
		Enrich: EnrichConfig{
			APIBatchSize:    getEnvAsInt("ENRICH_API_BATCH", 8),
			ScrapeBatchSize: getEnvAsInt("ENRICH_SCRAPE_BATCH", 3),
			BatchDelay:      getEnvAsDuration("ENRICH_BATCH_DELAY", 750*time.Millisecond),
			LookupTimeout:   getEnvAsDuration("ENRICH_LOOKUP_TIMEOUT", 60*time.Second),
			MatchThreshold:  getEnvAsInt("MATCH_THRESHOLD", 50),
		},
		PDF: PDFConfig{
			Pdftotext: getEnv("PDFTOTEXT_BIN", "pdftotext"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks the loaded configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.HTTP.RequestTimeout <= 0 {
		return NewAppError("CONFIG_ERROR", "HTTP_TIMEOUT must be positive", ErrInvalidInput)
	}
	if c.HTTP.MaxRetries < 0 {
		return NewAppError("CONFIG_ERROR", "HTTP_RETRIES must not be negative", ErrInvalidInput)
	}
	if c.Enrich.APIBatchSize < 1 || c.Enrich.ScrapeBatchSize < 1 {
		return NewAppError("CONFIG_ERROR", "batch sizes must be at least 1", ErrInvalidInput)
	}
	if c.Enrich.MatchThreshold < 0 || c.Enrich.MatchThreshold > 100 {
		return NewAppError("CONFIG_ERROR", "MATCH_THRESHOLD must be within 0..100", ErrInvalidInput)
	}
	return nil
}
