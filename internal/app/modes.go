package app

import (
	"context"

	"alertstate/internal/declared"
	"alertstate/internal/reconciler"
	"alertstate/pkg/logging"
)

// Sync runs one reconciliation and pushes its metrics when a Pushgateway is
// configured. A failed push is logged and does not fail the run.
func (a *Application) Sync(ctx context.Context) (reconciler.Summary, error) {
	summary, err := a.services.Reconciler.Run(ctx)
	if err != nil {
		return summary, err
	}
	a.pushMetrics(ctx)
	return summary, nil
}

// Plan computes what a sync would do without changing anything.
func (a *Application) Plan(ctx context.Context) (reconciler.Plan, error) {
	return a.services.Reconciler.Plan(ctx)
}

// Watch runs a sync, then keeps re-running it on changes to the project
// directory until ctx is done.
func (a *Application) Watch(ctx context.Context) error {
	if _, err := a.Sync(ctx); err != nil {
		return err
	}

	watcher := reconciler.NewWatcher(a.config.AlertstateConfig.Project.Dir, reconciler.DefaultDebounce)
	return watcher.Run(ctx, func(ctx context.Context) error {
		_, err := a.Sync(ctx)
		return err
	})
}

// Export writes the project's remote monitors into the project directory.
func (a *Application) Export(ctx context.Context, overwrite bool) (declared.ExportResult, error) {
	project := a.config.AlertstateConfig.Project.Name
	remote, err := a.services.Remote.ListMonitors(ctx, project)
	if err != nil {
		return declared.ExportResult{}, &reconciler.SnapshotError{Source: reconciler.SourceRemote, Err: err}
	}
	result, err := a.services.Loader.Export(remote, overwrite)
	if err != nil {
		return result, err
	}
	logging.Info("Export", "Exported %d monitors of project %s, skipped %d existing files",
		len(result.Written), project, len(result.Skipped))
	return result, nil
}

func (a *Application) pushMetrics(ctx context.Context) {
	m := a.config.AlertstateConfig.Metrics
	if a.services.Metrics == nil || m.PushgatewayURL == "" {
		return
	}
	if err := a.services.Metrics.Push(ctx, m.PushgatewayURL, m.Job, a.config.AlertstateConfig.Project.Name); err != nil {
		logging.Warn("Metrics", "%v", err)
	}
}
