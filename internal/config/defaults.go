package config

import "time"

const (
	// DefaultProjectName is used when neither the config nor PROJECT_NAME name a project.
	DefaultProjectName = "test"

	// DefaultNotification is appended to every declared monitor message.
	DefaultNotification = "@webhook-GardenerChat @all"

	// DefaultDatadogSite is the Datadog region the monitors live in.
	DefaultDatadogSite = "datadoghq.eu"

	// DefaultMaxRetries is how often a throttled mutation is retried.
	DefaultMaxRetries = 3

	// DefaultCooldown is the wait before retrying a throttled mutation.
	DefaultCooldown = 60 * time.Second

	DefaultPageSize       = 1000
	MaxPageSize           = 1000
	DefaultRequestTimeout = 30 * time.Second
	DefaultMetricsJob     = "alertstate"
)

// GetDefaultConfig returns the default configuration for alertstate.
func GetDefaultConfig() AlertstateConfig {
	return AlertstateConfig{
		Project: ProjectConfig{
			Name: DefaultProjectName,
			Dir:  ".",
		},
		Datadog: DatadogConfig{
			Site:     DefaultDatadogSite,
			PageSize: DefaultPageSize,
			Timeout:  DefaultRequestTimeout,
		},
		Notification: DefaultNotification,
		Retry: RetryConfig{
			MaxRetries: DefaultMaxRetries,
			Cooldown:   DefaultCooldown,
		},
		Metrics: MetricsConfig{
			Job: DefaultMetricsJob,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
