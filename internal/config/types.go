package config

import "time"

// AlertstateConfig is the top-level configuration structure for alertstate.
type AlertstateConfig struct {
	Project      ProjectConfig `yaml:"project"`
	Datadog      DatadogConfig `yaml:"datadog"`
	Notification string        `yaml:"notification,omitempty"` // Appended to every declared message
	Retry        RetryConfig   `yaml:"retry"`
	Metrics      MetricsConfig `yaml:"metrics"`
	Logging      LoggingConfig `yaml:"logging"`
}

// ProjectConfig selects the declared monitors and the tag that scopes them remotely.
type ProjectConfig struct {
	Name string `yaml:"name,omitempty"` // Project tag (default: test)
	Dir  string `yaml:"dir,omitempty"`  // Directory holding one file per monitor (default: .)
}

// DatadogConfig configures the remote monitors API.
type DatadogConfig struct {
	Site     string        `yaml:"site,omitempty"`     // Datadog site (default: datadoghq.eu)
	APIKey   string        `yaml:"apiKey,omitempty"`   // Usually taken from DD_API_KEY
	AppKey   string        `yaml:"appKey,omitempty"`   // Usually taken from DD_APP_KEY
	PageSize int           `yaml:"pageSize,omitempty"` // Monitors per list page (default: 1000)
	Timeout  time.Duration `yaml:"timeout,omitempty"`  // Per-request HTTP timeout (default: 30s)
}

// RetryConfig configures the handling of throttled mutations.
type RetryConfig struct {
	MaxRetries int           `yaml:"maxRetries,omitempty"` // Retries after the first attempt (default: 3)
	Cooldown   time.Duration `yaml:"cooldown,omitempty"`   // Wait before each retry (default: 60s)
}

// MetricsConfig configures the optional Pushgateway export of run metrics.
type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgatewayURL,omitempty"` // Empty disables pushing
	Job            string `yaml:"job,omitempty"`            // Pushgateway job label (default: alertstate)
}

// LoggingConfig configures pkg/logging.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error (default: info)
	Format string `yaml:"format,omitempty"` // text or json (default: text)
}
