package report

import "time"

const (
	DefaultKafkaTopic        = "qdrant-migrate.reports"
	DefaultKafkaMaxAttempts  = 3
	DefaultKafkaWriteTimeout = 10 * time.Second
	DefaultKafkaRequiredAcks = -1

	DefaultRabbitExchangeType = "topic"
	DefaultRabbitRoutingKey   = "qdrant-migrate.report"
	DefaultRabbitContentType  = "application/json"
)

// Config selects where run reports are published. The log sink is always on.
type Config struct {
	Kafka  KafkaConfig  `yaml:"kafka" mapstructure:"kafka"`
	Rabbit RabbitConfig `yaml:"rabbit" mapstructure:"rabbit"`
}

// KafkaConfig configures the Kafka report sink.
type KafkaConfig struct {
	Enabled bool     `yaml:"enabled" mapstructure:"enabled"`
	Brokers []string `yaml:"brokers" mapstructure:"brokers"`
	Topic   string   `yaml:"topic" mapstructure:"topic"`

	// RequiredAcks: -1 waits for all in-sync replicas, 1 for the leader only.
	RequiredAcks int           `yaml:"required_acks" mapstructure:"required_acks"`
	MaxAttempts  int           `yaml:"max_attempts" mapstructure:"max_attempts"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`

	// CompressionCodec is one of gzip, snappy, lz4, zstd or empty for none.
	CompressionCodec string `yaml:"compression_codec" mapstructure:"compression_codec"`

	TLS  TLSConfig  `yaml:"tls" mapstructure:"tls"`
	SASL SASLConfig `yaml:"sasl" mapstructure:"sasl"`
}

type TLSConfig struct {
	Enabled            bool   `yaml:"enabled" mapstructure:"enabled"`
	CACertPath         string `yaml:"ca_cert_path" mapstructure:"ca_cert_path"`
	ClientCertPath     string `yaml:"client_cert_path" mapstructure:"client_cert_path"`
	ClientKeyPath      string `yaml:"client_key_path" mapstructure:"client_key_path"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify" mapstructure:"insecure_skip_verify"`
}

type SASLConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Mechanism is PLAIN, SCRAM-SHA-256 or SCRAM-SHA-512.
	Mechanism string `yaml:"mechanism" mapstructure:"mechanism"`
	Username  string `yaml:"username" mapstructure:"username"`
	Password  string `yaml:"password" mapstructure:"password"`
}

// RabbitConfig configures the RabbitMQ report sink.
type RabbitConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	Host     string `yaml:"host" mapstructure:"host"`
	Port     uint   `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`

	// IsSSLEnabled switches to amqps. UseCert additionally presents the
	// client certificate.
	IsSSLEnabled   bool   `yaml:"is_ssl_enabled" mapstructure:"is_ssl_enabled"`
	UseCert        bool   `yaml:"use_cert" mapstructure:"use_cert"`
	CACertPath     string `yaml:"ca_cert_path" mapstructure:"ca_cert_path"`
	ClientCertPath string `yaml:"client_cert_path" mapstructure:"client_cert_path"`
	ClientKeyPath  string `yaml:"client_key_path" mapstructure:"client_key_path"`
	ServerName     string `yaml:"server_name" mapstructure:"server_name"`

	ExchangeName string `yaml:"exchange_name" mapstructure:"exchange_name"`
	ExchangeType string `yaml:"exchange_type" mapstructure:"exchange_type"`
	RoutingKey   string `yaml:"routing_key" mapstructure:"routing_key"`
	ContentType  string `yaml:"content_type" mapstructure:"content_type"`

	// DeclareExchange declares a durable exchange on connect.
	DeclareExchange bool `yaml:"declare_exchange" mapstructure:"declare_exchange"`
}

func DefaultConfig() Config {
	return Config{
		Kafka: KafkaConfig{
			Topic:        DefaultKafkaTopic,
			RequiredAcks: DefaultKafkaRequiredAcks,
			MaxAttempts:  DefaultKafkaMaxAttempts,
			WriteTimeout: DefaultKafkaWriteTimeout,
		},
		Rabbit: RabbitConfig{
			Host:         "localhost",
			Port:         5672,
			User:         "guest",
			Password:     "guest",
			ExchangeType: DefaultRabbitExchangeType,
			RoutingKey:   DefaultRabbitRoutingKey,
			ContentType:  DefaultRabbitContentType,
		},
	}
}
