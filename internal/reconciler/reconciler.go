package reconciler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"alertstate/internal/monitor"
	"alertstate/internal/observe"
	"alertstate/pkg/logging"
)

// Options configures a Reconciler.
type Options struct {
	Project string
	Retry   RetryPolicy

	// Wait replaces the blocking cooldown, mainly for tests and spinners.
	Wait WaitFunc

	// Metrics records run results when set.
	Metrics *Metrics
}

// Reconciler makes the remote monitors of one project match the declared ones.
type Reconciler struct {
	declared DeclaredSource
	remote   RemoteSource
	sink     observe.Sink
	executor *Executor
	metrics  *Metrics
	project  string
}

// New creates a reconciler. The client is usually the same value as remote.
func New(declared DeclaredSource, remote RemoteSource, client MutationClient, sink observe.Sink, opts Options) *Reconciler {
	if sink == nil {
		sink = observe.Discard
	}
	return &Reconciler{
		declared: declared,
		remote:   remote,
		sink:     sink,
		executor: NewExecutor(client, opts.Retry, sink, opts.Wait),
		metrics:  opts.Metrics,
		project:  opts.Project,
	}
}

// Run takes both snapshots, plans and applies the plan. Abandoned actions
// are reported in the summary and do not make Run fail.
func (r *Reconciler) Run(ctx context.Context) (Summary, error) {
	runID := uuid.NewString()
	start := time.Now()
	logging.Info("Reconciler", "Starting run %s for project %s", runID, r.project)

	plan, err := r.Plan(ctx)
	if err != nil {
		logging.Error("Reconciler", err, "Run %s failed", runID)
		return Summary{RunID: runID, Project: r.project}, err
	}

	summary, err := r.Apply(ctx, plan)
	summary.RunID = runID
	summary.Duration = time.Since(start)

	if r.metrics != nil {
		r.metrics.ObserveRun(summary)
	}
	if err != nil {
		logging.Warn("Reconciler", "Run %s interrupted after %d of %d changes", runID, summary.Applied, summary.Planned)
		return summary, err
	}

	logging.Info("Reconciler", "Run %s finished in %s: %d applied, %d abandoned",
		runID, summary.Duration.Round(time.Millisecond), summary.Applied, summary.Abandoned)
	return summary, nil
}

// Plan takes the declared and remote snapshots and computes the plan
// without changing anything.
func (r *Reconciler) Plan(ctx context.Context) (Plan, error) {
	declared, err := r.declared.Load()
	if err != nil {
		return Plan{}, &SnapshotError{Source: SourceDeclared, Err: err}
	}
	r.sink.Observe(fmt.Sprintf("Found %d local monitors", len(declared)), arrows(declared)...)

	remote, err := r.remote.ListMonitors(ctx, r.project)
	if err != nil {
		return Plan{}, &SnapshotError{Source: SourceRemote, Err: err}
	}
	r.sink.Observe(fmt.Sprintf("Found %d remote monitors", len(remote)), arrows(remote)...)

	return NewPlanner(r.project).WithDeclared(declared).WithRemote(remote).Plan()
}

// Apply executes every action of the plan in order. It stops before the next
// action once ctx is done and returns the context error.
func (r *Reconciler) Apply(ctx context.Context, plan Plan) (Summary, error) {
	summary := Summary{
		Project:  plan.Project,
		Declared: len(plan.Declared),
		Remote:   len(plan.Remote),
		Planned:  len(plan.Actions),
	}

	if len(plan.Declared) == 0 && len(plan.Remote) == 0 {
		r.sink.Observe("Completed. No remotes to manage, and no locals to push.")
	}

	for _, action := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		r.announce(action)

		result := r.executor.Execute(ctx, action)
		summary.Results = append(summary.Results, result)
		if result.Outcome == OutcomeApplied {
			summary.Applied++
		} else {
			summary.Abandoned++
		}

		if r.metrics != nil {
			r.metrics.ObserveResult(result)
		}
	}

	r.sink.Observe(fmt.Sprintf("Monitor checks complete. %d updates performed.", summary.Applied))
	return summary, nil
}

func (r *Reconciler) announce(action Action) {
	switch action.Kind {
	case ActionCreate:
		r.sink.Observe("Found new Monitor:", action.Name)
	case ActionUpdate:
		r.sink.Observe("Change detected:", action.Diff)
		r.sink.Observe("Found Monitor change:", action.Name)
	case ActionDelete:
		r.sink.Observe("Monitor has been removed:", action.Name)
	}
}

func arrows(records []monitor.Record) []string {
	names := monitor.Names(records)
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = "→ " + name
	}
	return out
}
