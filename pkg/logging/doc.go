// Package logging provides the structured logging used by alertstate.
//
// It is a thin layer over Go's standard slog package. Every entry carries a
// subsystem attribute so that output from the loader, the Datadog client and
// the reconciler can be told apart and filtered.
//
// # Log Levels
//   - **Debug**: request pages, per-record decisions
//   - **Info**: run lifecycle, configuration sources
//   - **Warn**: recoverable problems, e.g. throttled calls
//   - **Error**: failures, always with the error attached
//
// # Usage
//
//	logging.Init(logging.LevelInfo, logging.FormatJSON, os.Stderr)
//
//	logging.Info("Reconciler", "Starting run %s", runID)
//	logging.Error("Datadog", err, "Failed to list monitors")
//
// InitForCLI is a shorthand for a text handler. Before initialization only
// warnings and errors are written, to stderr.
//
// Human facing progress output (what was found, what changed) is not written
// here but through the observe package, which may forward to this package.
package logging
