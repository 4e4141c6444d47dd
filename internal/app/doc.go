// Package app wires configuration, the declared store, the remote session and
// the reconciler into one Application per command run.
//
// # Configuration precedence
//
//  1. Built-in defaults (internal/config)
//  2. config.yaml (~/.config/alertstate/config.yaml or --config)
//  3. .env file and environment (PROJECT_NAME, DD_API_KEY, DD_APP_KEY, DD_SITE, PUSHGATEWAY_URL)
//  4. Command line flags
//
// # Modes
//
//   - Sync: one reconciliation run, metrics pushed when configured
//   - Watch: Sync, then a new run after every change in the project directory
//   - Plan: both snapshots and the plan, nothing is changed
//   - Export: remote monitors written back as declared files
package app
