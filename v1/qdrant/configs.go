package qdrant

import (
	"time"
)

// DefaultGrpcPort is the gRPC port Qdrant listens on by default.
const DefaultGrpcPort = 6334

// Config holds connection and behavior settings for the Qdrant gRPC client.
//
// Example (programmatic):
//
//	cfg := qdrant.DefaultConfig()
//	cfg.Endpoint = "qdrant.internal"
//	cfg.ApiKey = os.Getenv("QDRANT_API_KEY")
//
// Example (builder style):
//
//	cfg := qdrant.FromEndpoint("qdrant.internal").
//	    WithApiKey(os.Getenv("QDRANT_API_KEY")).
//	    WithTLS(true).
//	    WithTimeout(30 * time.Second)
type Config struct {
	// Hostname of the Qdrant server, e.g. "localhost".
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" env:"QDRANT_ENDPOINT"`

	// gRPC port of the Qdrant server. Defaults to 6334.
	Port int `yaml:"port" mapstructure:"port" env:"QDRANT_PORT"`

	// Optional authentication token for secured deployments.
	ApiKey string `yaml:"api_key" mapstructure:"api_key" env:"QDRANT_API_KEY"`

	// UseTLS dials with TLS 1.3.
	UseTLS bool `yaml:"use_tls" mapstructure:"use_tls" env:"QDRANT_USE_TLS"`

	// Maximum duration of a single request. Zero means no limit.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" env:"QDRANT_TIMEOUT"`

	// Timeout of the health check done on connect.
	ConnectTimeout time.Duration `yaml:"connect_timeout" mapstructure:"connect_timeout" env:"QDRANT_CONNECT_TIMEOUT"`

	// Number of gRPC connections. Zero uses the client default of 3.
	PoolSize uint `yaml:"pool_size" mapstructure:"pool_size" env:"QDRANT_POOL_SIZE"`

	// Whether to keep idle connections alive with pings.
	KeepAlive bool `yaml:"keep_alive" mapstructure:"keep_alive" env:"QDRANT_KEEP_ALIVE"`

	// Whether to perform version compatibility checks between client and server.
	CheckCompatibility bool `yaml:"check_compatibility" mapstructure:"check_compatibility" env:"QDRANT_CHECK_COMPATIBILITY"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:           "localhost",
		Port:               DefaultGrpcPort,
		Timeout:            60 * time.Second,
		ConnectTimeout:     5 * time.Second,
		KeepAlive:          true,
		CheckCompatibility: true,
	}
}

// FromEndpoint returns a default config pre-filled with a specific endpoint.
func FromEndpoint(host string) *Config {
	cfg := DefaultConfig()
	cfg.Endpoint = host
	return cfg
}

func (c *Config) WithPort(port int) *Config {
	c.Port = port
	return c
}

func (c *Config) WithApiKey(key string) *Config {
	c.ApiKey = key
	return c
}

func (c *Config) WithTLS(enabled bool) *Config {
	c.UseTLS = enabled
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

func (c *Config) WithConnectTimeout(d time.Duration) *Config {
	c.ConnectTimeout = d
	return c
}

func (c *Config) WithPoolSize(n uint) *Config {
	c.PoolSize = n
	return c
}

func (c *Config) WithKeepAlive(enabled bool) *Config {
	c.KeepAlive = enabled
	return c
}

func (c *Config) WithCompatibilityCheck(enabled bool) *Config {
	c.CheckCompatibility = enabled
	return c
}
