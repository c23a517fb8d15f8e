package tracer

// Config controls span export.
type Config struct {
	// ServiceName is recorded as the service.name resource attribute.
	ServiceName string `yaml:"service_name" mapstructure:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv is recorded as deployment.environment.
	AppEnv string `yaml:"app_env" mapstructure:"app_env" envconfig:"APP_ENV"`

	// EnableExport sends spans to an OTLP/HTTP collector. The endpoint is taken
	// from the standard OTEL_EXPORTER_OTLP_* environment variables.
	EnableExport bool `yaml:"enable_export" mapstructure:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "qdrant-migrate",
		AppEnv:      "development",
	}
}
