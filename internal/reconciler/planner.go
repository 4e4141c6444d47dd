package reconciler

import (
	"errors"
	"fmt"

	"alertstate/internal/monitor"
)

// ErrSnapshotMissing is returned when a plan is requested before both the
// declared and the remote snapshot were taken.
var ErrSnapshotMissing = errors.New("declared and remote snapshots must be taken before planning")

// Snapshot sources reported by SnapshotError.
const (
	SourceDeclared = "declared"
	SourceRemote   = "remote"
)

// SnapshotError reports a failure to take one of the two snapshots.
type SnapshotError struct {
	Source string
	Err    error
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("failed to read %s monitors: %v", e.Source, e.Err)
}

func (e *SnapshotError) Unwrap() error {
	return e.Err
}

// Planner computes the plan for one project from a declared and a remote
// snapshot. Both snapshots are copied when set and never changed afterwards.
type Planner struct {
	project      string
	declared     []monitor.Record
	remote       []monitor.Record
	haveDeclared bool
	haveRemote   bool
}

// NewPlanner creates a planner for project.
func NewPlanner(project string) *Planner {
	return &Planner{project: project}
}

// WithDeclared sets the declared snapshot.
func (p *Planner) WithDeclared(records []monitor.Record) *Planner {
	p.declared = cloneAll(records)
	p.haveDeclared = true
	return p
}

// WithRemote sets the remote snapshot.
func (p *Planner) WithRemote(records []monitor.Record) *Planner {
	p.remote = cloneAll(records)
	p.haveRemote = true
	return p
}

// Plan joins both snapshots by name.
//
// With no remote monitors every declared monitor is created in declared
// order. Otherwise each declared monitor is updated when it differs from
// the remote one of the same name or created when there is none, and then
// every remote monitor whose name is not declared is deleted, in remote
// order.
func (p *Planner) Plan() (Plan, error) {
	if !p.haveDeclared || !p.haveRemote {
		return Plan{}, ErrSnapshotMissing
	}

	plan := Plan{
		Project:  p.project,
		Declared: p.declared,
		Remote:   p.remote,
	}

	if len(p.remote) == 0 {
		for _, d := range p.declared {
			plan.Actions = append(plan.Actions, createAction(d))
		}
		return plan, nil
	}

	declaredByName := monitor.Index(p.declared)
	remoteByName := monitor.Index(p.remote)

	for _, d := range p.declared {
		r, ok := remoteByName[d.Name]
		if !ok {
			plan.Actions = append(plan.Actions, createAction(d))
			continue
		}
		if monitor.Differs(d, r) {
			plan.Actions = append(plan.Actions, Action{
				Kind:     ActionUpdate,
				Name:     d.Name,
				RemoteID: r.RemoteID(),
				Record:   d.Payload(),
				Diff:     monitor.Diff(d, r),
				Changes:  monitor.ChangedFields(d, r),
			})
		}
	}

	for _, r := range p.remote {
		if _, ok := declaredByName[r.Name]; ok {
			continue
		}
		plan.Actions = append(plan.Actions, Action{
			Kind:     ActionDelete,
			Name:     r.Name,
			RemoteID: r.RemoteID(),
			Record:   r.Clone(),
		})
	}

	return plan, nil
}

func createAction(d monitor.Record) Action {
	return Action{
		Kind:   ActionCreate,
		Name:   d.Name,
		Record: d.Payload(),
	}
}

func cloneAll(records []monitor.Record) []monitor.Record {
	out := make([]monitor.Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
