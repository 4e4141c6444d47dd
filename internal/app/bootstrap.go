package app

import (
	"fmt"
	"os"

	"alertstate/pkg/logging"
)

var lookupEnv = os.LookupEnv

// Application bootstraps and runs one alertstate command.
//
// NewApplication resolves the configuration (defaults, config file, .env,
// environment, then flags), initializes logging and opens the remote
// session. Close must be called on every exit path:
//
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return err
//	}
//	defer application.Close()
//	summary, err := application.Sync(ctx)
type Application struct {
	config   *Config
	services *Services
}

// NewApplication creates and initializes a new application instance with the provided configuration.
func NewApplication(cfg *Config) (*Application, error) {
	// Flags decide the log level until the config file has been read.
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logging.Init(level, logging.Format(cfg.LogFormat), cfg.stderr())

	resolved, err := resolve(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load alertstate configuration: %w", err)
	}
	cfg.AlertstateConfig = &resolved

	level, _ = logging.ParseLevel(resolved.Logging.Level)
	logging.Init(level, logging.Format(resolved.Logging.Format), cfg.stderr())

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, err
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// Services returns the wired components.
func (a *Application) Services() *Services {
	return a.services
}

// Close releases the remote session.
func (a *Application) Close() error {
	if a.services == nil || a.services.Remote == nil {
		return nil
	}
	return a.services.Remote.Close()
}
