package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/logger"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/metrics"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/migrate"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/qdrant"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/qdranthttp"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/report"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/tracer"
)

const (
	TransportGrpc = "grpc"
	TransportRest = "rest"

	envPrefix = "QDRANT_MIGRATE"
)

// Config is the full configuration of one migration run.
type Config struct {
	Source      EndpointConfig `yaml:"source" mapstructure:"source"`
	Destination EndpointConfig `yaml:"destination" mapstructure:"destination"`
	Migrate     migrate.Config `yaml:"migrate" mapstructure:"migrate"`
	Logger      logger.Config  `yaml:"logger" mapstructure:"logger"`
	Metrics     metrics.Config `yaml:"metrics" mapstructure:"metrics"`
	Tracer      tracer.Config  `yaml:"tracer" mapstructure:"tracer"`
	Report      report.Config  `yaml:"report" mapstructure:"report"`
}

// EndpointConfig selects the transport to one Qdrant server. Only the
// section matching Transport is used.
type EndpointConfig struct {
	Transport string            `yaml:"transport" mapstructure:"transport"`
	Grpc      qdrant.Config     `yaml:"grpc" mapstructure:"grpc"`
	Rest      qdranthttp.Config `yaml:"rest" mapstructure:"rest"`
}

func (e EndpointConfig) validate(role string) error {
	switch e.Transport {
	case TransportGrpc:
		if e.Grpc.Endpoint == "" {
			return fmt.Errorf("%s: grpc endpoint is required", role)
		}
	case TransportRest:
		if e.Rest.URL == "" {
			return fmt.Errorf("%s: rest url is required", role)
		}
	default:
		return fmt.Errorf("%s: unknown transport %q", role, e.Transport)
	}
	return nil
}

// Validate checks both endpoints and the migration options.
func (c *Config) Validate() error {
	return errors.Join(
		c.Source.validate("source"),
		c.Destination.validate("destination"),
		c.Migrate.Options().Validate(),
	)
}

// newFlagSet declares the command line. Flags override the config file and
// the environment.
func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("qdrant-migrate", pflag.ContinueOnError)
	fs.String("config", "", "path to a YAML config file")
	fs.String("env-file", ".env", "dotenv file loaded before reading the environment")

	fs.String("source-transport", TransportGrpc, "source transport: grpc or rest")
	fs.String("source-host", "", "source gRPC host")
	fs.Int("source-port", qdrant.DefaultGrpcPort, "source gRPC port")
	fs.String("source-url", "", "source REST url")
	fs.String("source-api-key", "", "source API key")

	fs.String("dest-transport", TransportGrpc, "destination transport: grpc or rest")
	fs.String("dest-host", "", "destination gRPC host")
	fs.Int("dest-port", qdrant.DefaultGrpcPort, "destination gRPC port")
	fs.String("dest-url", "", "destination REST url")
	fs.String("dest-api-key", "", "destination API key")

	fs.StringSlice("collections", nil, "collections to migrate, all when empty")
	fs.String("on-collision", string(migrate.Raise), "Raise, Recreate or Skip")
	fs.Int("batch-size", migrate.DefaultBatchSize, "points per scroll and upload")
	fs.Bool("continue-on-error", false, "keep going after a collection fails")
	fs.String("log-level", logger.Info, "debug, info, warning or error")
	fs.String("metrics-address", "", "serve Prometheus metrics on this address")
	return fs
}

// flagKeys maps flags to config keys.
var flagKeys = map[string]string{
	"source-transport":  "source.transport",
	"source-host":       "source.grpc.endpoint",
	"source-port":       "source.grpc.port",
	"source-url":        "source.rest.url",
	"dest-transport":    "destination.transport",
	"dest-host":         "destination.grpc.endpoint",
	"dest-port":         "destination.grpc.port",
	"dest-url":          "destination.rest.url",
	"collections":       "migrate.collections",
	"on-collision":      "migrate.on_collision",
	"batch-size":        "migrate.batch_size",
	"continue-on-error": "migrate.continue_on_error",
	"log-level":         "logger.level",
	"metrics-address":   "metrics.address",
}

// LoadConfig reads defaults, then the config file, then the environment
// (prefixed QDRANT_MIGRATE_, dots replaced by underscores), then flags.
func LoadConfig(args []string) (*Config, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	envFile, _ := fs.GetString("env-file")
	if err := godotenv.Load(envFile); err != nil && fs.Changed("env-file") {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("qdrant-migrate")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, err
		}
	}
	// API keys apply to whichever transport is selected.
	for _, side := range []string{"source", "dest"} {
		flag := fs.Lookup(side + "-api-key")
		if !flag.Changed {
			continue
		}
		section := side
		if side == "dest" {
			section = "destination"
		}
		v.Set(section+".grpc.api_key", flag.Value.String())
		v.Set(section+".rest.api_key", flag.Value.String())
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	for _, section := range []string{"source", "destination"} {
		grpc := qdrant.DefaultConfig()
		v.SetDefault(section+".transport", TransportGrpc)
		v.SetDefault(section+".grpc.endpoint", "")
		v.SetDefault(section+".grpc.port", grpc.Port)
		v.SetDefault(section+".grpc.api_key", "")
		v.SetDefault(section+".grpc.use_tls", grpc.UseTLS)
		v.SetDefault(section+".grpc.timeout", grpc.Timeout)
		v.SetDefault(section+".grpc.connect_timeout", grpc.ConnectTimeout)
		v.SetDefault(section+".grpc.pool_size", grpc.PoolSize)
		v.SetDefault(section+".grpc.keep_alive", grpc.KeepAlive)
		v.SetDefault(section+".grpc.check_compatibility", grpc.CheckCompatibility)

		rest := qdranthttp.DefaultConfig()
		v.SetDefault(section+".rest.url", "")
		v.SetDefault(section+".rest.api_key", "")
		v.SetDefault(section+".rest.timeout", rest.Timeout)
	}

	m := migrate.DefaultConfig()
	v.SetDefault("migrate.collections", m.Collections)
	v.SetDefault("migrate.on_collision", m.OnCollision)
	v.SetDefault("migrate.batch_size", m.BatchSize)
	v.SetDefault("migrate.continue_on_error", m.ContinueOnError)

	l := logger.DefaultConfig()
	v.SetDefault("logger.level", l.Level)
	v.SetDefault("logger.service_name", l.ServiceName)
	v.SetDefault("logger.enable_tracing", l.EnableTracing)

	mc := metrics.DefaultConfig()
	v.SetDefault("metrics.address", "")
	v.SetDefault("metrics.enable_default_collectors", mc.EnableDefaultCollectors)
	v.SetDefault("metrics.namespace", mc.Namespace)
	v.SetDefault("metrics.service_name", mc.ServiceName)

	t := tracer.DefaultConfig()
	v.SetDefault("tracer.service_name", t.ServiceName)
	v.SetDefault("tracer.app_env", t.AppEnv)
	v.SetDefault("tracer.enable_export", t.EnableExport)

	r := report.DefaultConfig()
	v.SetDefault("report.kafka.enabled", r.Kafka.Enabled)
	v.SetDefault("report.kafka.brokers", r.Kafka.Brokers)
	v.SetDefault("report.kafka.topic", r.Kafka.Topic)
	v.SetDefault("report.kafka.required_acks", r.Kafka.RequiredAcks)
	v.SetDefault("report.kafka.max_attempts", r.Kafka.MaxAttempts)
	v.SetDefault("report.kafka.write_timeout", r.Kafka.WriteTimeout)
	v.SetDefault("report.kafka.compression_codec", r.Kafka.CompressionCodec)
	v.SetDefault("report.rabbit.enabled", r.Rabbit.Enabled)
	v.SetDefault("report.rabbit.host", r.Rabbit.Host)
	v.SetDefault("report.rabbit.port", r.Rabbit.Port)
	v.SetDefault("report.rabbit.user", r.Rabbit.User)
	v.SetDefault("report.rabbit.password", r.Rabbit.Password)
	v.SetDefault("report.rabbit.exchange_name", r.Rabbit.ExchangeName)
	v.SetDefault("report.rabbit.exchange_type", r.Rabbit.ExchangeType)
	v.SetDefault("report.rabbit.routing_key", r.Rabbit.RoutingKey)
	v.SetDefault("report.rabbit.content_type", r.Rabbit.ContentType)
	v.SetDefault("report.rabbit.declare_exchange", r.Rabbit.DeclareExchange)
}
