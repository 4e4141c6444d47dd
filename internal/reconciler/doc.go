// Package reconciler makes the remote monitors of a project match the
// monitors declared in the project directory.
//
// # Overview
//
// A run takes two snapshots, the declared monitors from a DeclaredSource and
// the remote monitors from a RemoteSource, joins them by name and computes a
// Plan. Each action of the plan is executed in order through a MutationClient
// by the Executor:
//
//	r := reconciler.New(loader, client, client, sink, reconciler.Options{
//		Project: "checkout",
//		Retry:   reconciler.DefaultRetryPolicy,
//	})
//	summary, err := r.Run(ctx)
//
// # Planning
//
// When no remote monitor exists every declared monitor is created. Otherwise
// declared monitors are updated when their projection differs from the remote
// one (see monitor.Differs), created when missing, and remote monitors that
// are not declared are deleted. Options are forwarded but never compared.
//
// # Retries
//
// Only rate limited calls are retried, at most MaxRetries times with a fixed
// blocking cooldown in between. Each action has its own counter. An action
// that is rejected or stays throttled is abandoned and reported; the run
// carries on and still completes successfully.
//
// # Watching
//
// Watcher re-runs a full reconciliation after changes to monitor files.
// Nothing is carried over between runs.
package reconciler
