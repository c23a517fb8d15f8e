package qdranthttp

import "time"

// DefaultURL is the REST address of a local Qdrant server.
const DefaultURL = "http://localhost:6333"

// Config holds settings for the Qdrant REST client.
type Config struct {
	// URL is the base address, e.g. "https://qdrant.internal:6333".
	URL string `yaml:"url" mapstructure:"url" env:"QDRANT_HTTP_URL"`

	// ApiKey is sent in the api-key header when set.
	ApiKey string `yaml:"api_key" mapstructure:"api_key" env:"QDRANT_HTTP_API_KEY"`

	// Timeout bounds each HTTP request.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" env:"QDRANT_HTTP_TIMEOUT"`
}

func DefaultConfig() *Config {
	return &Config{
		URL:     DefaultURL,
		Timeout: 60 * time.Second,
	}
}
