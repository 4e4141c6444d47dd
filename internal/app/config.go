package app

import (
	"io"
	"os"

	"alertstate/internal/config"
	"alertstate/internal/reconciler"
)

// Config holds the application configuration collected from the command line.
// Empty values leave the configuration file and environment in charge.
type Config struct {
	// Custom configuration file (optional)
	ConfigPath string

	// EnvFile is loaded before the environment is read. EnvFileRequired
	// makes a missing file an error, for files named on the command line.
	EnvFile         string
	EnvFileRequired bool

	// Logging and console settings
	LogLevel  string
	LogFormat string
	NoColor   bool
	Quiet     bool

	// Project overrides
	ProjectName string
	ProjectDir  string

	// Stdout receives observations, Stderr failures and logs.
	Stdout io.Writer
	Stderr io.Writer

	// Wait replaces the blocking cooldown between retries. The CLI uses it
	// to show a spinner.
	Wait reconciler.WaitFunc

	// OpenRemote opens the remote session. Defaults to the Datadog client.
	OpenRemote RemoteOpener

	// Resolved configuration, set by NewApplication.
	AlertstateConfig *config.AlertstateConfig
}

// NewConfig creates a new application configuration writing to the
// process's standard streams.
func NewConfig(configPath, envFile string) *Config {
	return &Config{
		ConfigPath: configPath,
		EnvFile:    envFile,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

func (c *Config) stdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

func (c *Config) stderr() io.Writer {
	if c.Stderr == nil {
		return os.Stderr
	}
	return c.Stderr
}
