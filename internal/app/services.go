package app

import (
	"fmt"

	"alertstate/internal/config"
	"alertstate/internal/datadog"
	"alertstate/internal/declared"
	"alertstate/internal/observe"
	"alertstate/internal/reconciler"
	"alertstate/pkg/logging"
)

// RemoteClient is an open remote session able to list and mutate monitors.
type RemoteClient interface {
	reconciler.RemoteSource
	reconciler.MutationClient
	Close() error
}

// RemoteOpener opens a RemoteClient.
type RemoteOpener func(opts datadog.Options) (RemoteClient, error)

func openDatadog(opts datadog.Options) (RemoteClient, error) {
	return datadog.Open(opts)
}

// Services holds every component of one command run.
//
// The remote session is opened once here and released by Application.Close.
type Services struct {
	Store      *declared.Store
	Loader     *declared.Loader
	Remote     RemoteClient
	Sink       observe.Sink
	Metrics    *reconciler.Metrics
	Reconciler *reconciler.Reconciler
}

// InitializeServices wires the declared store, the remote session and the
// reconciler from the resolved configuration.
func InitializeServices(cfg *Config) (*Services, error) {
	c := cfg.AlertstateConfig

	store := declared.NewStore(c.Project.Dir)
	loader := declared.NewLoader(store, c.Project.Name, c.Notification)

	opener := cfg.OpenRemote
	if opener == nil {
		opener = openDatadog
	}
	remote, err := opener(datadog.Options{
		Site:     c.Datadog.Site,
		APIKey:   c.Datadog.APIKey,
		AppKey:   c.Datadog.AppKey,
		PageSize: c.Datadog.PageSize,
		Timeout:  c.Datadog.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open datadog session: %w", err)
	}

	sink := newSink(cfg)

	var metrics *reconciler.Metrics
	if c.Metrics.PushgatewayURL != "" {
		metrics = reconciler.NewMetrics()
	}

	r := reconciler.New(loader, remote, remote, sink, reconciler.Options{
		Project: c.Project.Name,
		Retry: reconciler.RetryPolicy{
			MaxRetries: c.Retry.MaxRetries,
			Cooldown:   c.Retry.Cooldown,
		},
		Wait:    cfg.Wait,
		Metrics: metrics,
	})

	logging.Debug("Bootstrap", "Initialized services for project %s in %s", c.Project.Name, c.Project.Dir)

	return &Services{
		Store:      store,
		Loader:     loader,
		Remote:     remote,
		Sink:       sink,
		Metrics:    metrics,
		Reconciler: r,
	}, nil
}

// newSink picks the console for people and the structured log for json
// logging, where coloured free text would only get in the way.
func newSink(cfg *Config) observe.Sink {
	if cfg.AlertstateConfig.Logging.Format == string(logging.FormatJSON) {
		return observe.LogSink{Subsystem: "Reconciler"}
	}
	return observe.NewConsoleSink(cfg.stdout(), cfg.stderr(), observe.ConsoleOptions{
		Color: !cfg.NoColor && observe.ColorEnabled(cfg.stdout()),
		Quiet: cfg.Quiet,
	})
}

func resolve(cfg *Config) (config.AlertstateConfig, error) {
	if err := config.LoadEnvFile(cfg.EnvFile, cfg.EnvFileRequired); err != nil {
		return config.AlertstateConfig{}, err
	}

	c, err := config.LoadConfig(cfg.ConfigPath)
	if err != nil {
		return config.AlertstateConfig{}, err
	}

	if err := config.ApplyEnv(&c, lookupEnv); err != nil {
		return config.AlertstateConfig{}, err
	}

	if cfg.ProjectName != "" {
		c.Project.Name = cfg.ProjectName
	}
	if cfg.ProjectDir != "" {
		c.Project.Dir = cfg.ProjectDir
	}
	if cfg.LogLevel != "" {
		c.Logging.Level = cfg.LogLevel
	}
	if cfg.LogFormat != "" {
		c.Logging.Format = cfg.LogFormat
	}

	if err := config.Validate(c); err != nil {
		return config.AlertstateConfig{}, err
	}
	return c, nil
}
