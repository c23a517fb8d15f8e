package logger

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config controls the log level and the fields attached to every entry.
type Config struct {
	// Level is one of debug, info, warning or error. Anything else logs at info.
	Level string `yaml:"level" mapstructure:"level" envconfig:"ZAP_LOGGER_LEVEL"`

	// ServiceName is added to every entry as the "service" field.
	ServiceName string `yaml:"service_name" mapstructure:"service_name" envconfig:"ZAP_LOGGER_SERVICE_NAME"`

	// EnableTracing makes the ...WithContext methods add trace_id and span_id
	// from the active OpenTelemetry span.
	EnableTracing bool `yaml:"enable_tracing" mapstructure:"enable_tracing" envconfig:"ZAP_LOGGER_ENABLE_TRACING"`
}

// DefaultConfig logs at info level without trace correlation.
func DefaultConfig() Config {
	return Config{
		Level:       Info,
		ServiceName: "qdrant-migrate",
	}
}
