package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"alertstate/pkg/logging"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/alertstate"
	configFileName = "config.yaml"

	// DefaultEnvFile is read when present; a missing file is not an error.
	DefaultEnvFile = ".env"
)

// Environment variables that override the configuration file.
const (
	EnvProjectName    = "PROJECT_NAME"
	EnvAPIKey         = "DD_API_KEY"
	EnvAppKey         = "DD_APP_KEY"
	EnvSite           = "DD_SITE"
	EnvPushgatewayURL = "PUSHGATEWAY_URL"
	EnvMaxRetries     = "ALERTSTATE_MAX_RETRIES"
)

// osUserHomeDir is a variable so tests can point the default path elsewhere.
var osUserHomeDir = os.UserHomeDir

// GetDefaultConfigPath returns ~/.config/alertstate/config.yaml.
func GetDefaultConfigPath() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

// LoadConfig loads the configuration file at configPath on top of the defaults.
// An empty configPath selects the default location, which may be missing.
// An explicitly given path must exist.
func LoadConfig(configPath string) (AlertstateConfig, error) {
	config := GetDefaultConfig()

	explicit := configPath != ""
	if !explicit {
		defaultPath, err := GetDefaultConfigPath()
		if err != nil {
			logging.Warn("ConfigLoader", "Using defaults: %v", err)
			return config, nil
		}
		configPath = defaultPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			logging.Debug("ConfigLoader", "No config.yaml found at %s, using defaults", configPath)
			return config, nil
		}
		return AlertstateConfig{}, fmt.Errorf("error reading config %s: %w", configPath, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return AlertstateConfig{}, fmt.Errorf("error loading config from %s: %w", configPath, err)
	}
	logging.Info("ConfigLoader", "Loaded configuration from %s", configPath)
	return config, nil
}

// LoadEnvFile exports the variables of a dotenv file into the process
// environment without overriding variables that are already set.
// When required is false a missing file is ignored.
func LoadEnvFile(path string, required bool) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("env file %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading env file %s: %w", path, err)
	}
	logging.Debug("ConfigLoader", "Loaded environment from %s", path)
	return nil
}

// ApplyEnv overrides configuration values from the environment. lookup has
// the signature of os.LookupEnv.
func ApplyEnv(config *AlertstateConfig, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvProjectName); ok && v != "" {
		config.Project.Name = v
	}
	if v, ok := lookup(EnvAPIKey); ok && v != "" {
		config.Datadog.APIKey = v
	}
	if v, ok := lookup(EnvAppKey); ok && v != "" {
		config.Datadog.AppKey = v
	}
	if v, ok := lookup(EnvSite); ok && v != "" {
		config.Datadog.Site = v
	}
	if v, ok := lookup(EnvPushgatewayURL); ok && v != "" {
		config.Metrics.PushgatewayURL = v
	}
	if v, ok := lookup(EnvMaxRetries); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxRetries, err)
		}
		config.Retry.MaxRetries = n
	}
	return nil
}
