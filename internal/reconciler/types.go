package reconciler

import (
	"context"
	"time"

	"alertstate/internal/monitor"
)

// DeclaredSource provides the declared monitors of the project.
type DeclaredSource interface {
	Load() ([]monitor.Record, error)
}

// RemoteSource provides the monitors that currently exist remotely for a project.
type RemoteSource interface {
	ListMonitors(ctx context.Context, project string) ([]monitor.Record, error)
}

// MutationClient applies single monitor mutations remotely.
//
// Failed calls return a *monitor.APIError so the executor can decide whether
// a call may be retried.
type MutationClient interface {
	CreateMonitor(ctx context.Context, record monitor.Record) (monitor.Record, error)
	UpdateMonitor(ctx context.Context, id int64, record monitor.Record) (monitor.Record, error)
	DeleteMonitor(ctx context.Context, id int64) error
}

// ActionKind is the kind of mutation an action performs.
type ActionKind string

const (
	// ActionCreate creates a declared monitor that does not exist remotely.
	ActionCreate ActionKind = "create"

	// ActionUpdate replaces a remote monitor by its declared definition.
	ActionUpdate ActionKind = "update"

	// ActionDelete removes a remote monitor that is no longer declared.
	ActionDelete ActionKind = "delete"
)

// verb is the past tense used when reporting an applied action.
func (k ActionKind) verb() string {
	switch k {
	case ActionCreate:
		return "added"
	case ActionUpdate:
		return "updated"
	case ActionDelete:
		return "removed"
	default:
		return string(k)
	}
}

// Action is one planned mutation.
type Action struct {
	Kind ActionKind
	Name string

	// RemoteID is the id of the remote monitor for updates and deletes.
	RemoteID int64

	// Record is the declared payload for creates and updates, and the remote
	// record for deletes.
	Record monitor.Record

	// Diff is the structured difference that caused an update, and Changes
	// the names of the fields that differ.
	Diff    string
	Changes []string
}

// Plan is the ordered list of actions that makes the remote side match the
// declared side.
type Plan struct {
	Project  string
	Declared []monitor.Record
	Remote   []monitor.Record
	Actions  []Action
}

// Empty reports whether nothing needs to change.
func (p Plan) Empty() bool {
	return len(p.Actions) == 0
}

// Count returns how many actions of kind the plan holds.
func (p Plan) Count(kind ActionKind) int {
	n := 0
	for _, a := range p.Actions {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

// Outcome is the final state of one executed action.
type Outcome int

const (
	// OutcomeApplied means the mutation succeeded, possibly after retries.
	OutcomeApplied Outcome = iota

	// OutcomeRetryExhausted means the call was throttled on every attempt.
	OutcomeRetryExhausted

	// OutcomeRejected means the call failed for a reason other than throttling.
	OutcomeRejected
)

// String makes Outcome satisfy the fmt.Stringer interface.
func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeRetryExhausted:
		return "retry_exhausted"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Result is the result of executing one action.
type Result struct {
	Action  Action
	Outcome Outcome

	// Attempts is the number of calls issued, including the first one.
	Attempts int

	// Err is the last error for abandoned actions.
	Err error
}

// Summary describes a finished run.
type Summary struct {
	RunID    string
	Project  string
	Declared int
	Remote   int
	Planned  int

	// Applied counts successful mutations only.
	Applied int

	// Abandoned counts actions given up after rejection or exhausted retries.
	Abandoned int

	Results  []Result
	Duration time.Duration
}
