package reconciler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alertstate/internal/monitor"
	"alertstate/internal/observe"
)

func newTestReconciler(declared DeclaredSource, remote *fakeRemote, sink observe.Sink, wait *recordingWait) *Reconciler {
	return New(declared, remote, remote, sink, Options{
		Project: testProject,
		Retry:   DefaultRetryPolicy,
		Wait:    wait.Wait,
	})
}

func TestRun_CreateScenario(t *testing.T) {
	declared := monitor.Record{
		Name:     "cpu-high",
		Tags:     []string{"svc", testProject},
		Message:  "m @webhook-GardenerChat @all",
		Query:    "q",
		Priority: monitor.Int64(1),
		Type:     "metric alert",
	}
	remote := newFakeRemote()
	rec := &observe.Recorder{}

	summary, err := newTestReconciler(staticDeclared{records: []monitor.Record{declared}}, remote, rec, &recordingWait{}).
		Run(context.Background())
	require.NoError(t, err)

	calls := remote.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, ActionCreate, calls[0].Kind)
	assert.Equal(t, declared, calls[0].Record)
	assert.Equal(t, 1, summary.Applied)
	assert.NotEmpty(t, summary.RunID)
	assert.True(t, rec.Contains("Found 1 local monitors"))
	assert.True(t, rec.Contains("→ cpu-high"))
	assert.True(t, rec.Contains("Found 0 remote monitors"))
	assert.True(t, rec.Contains("Monitor checks complete. 1 updates performed."))
}

func TestRun_NoChangeScenario(t *testing.T) {
	declared := record("cpu-high", "q")
	declared.Options = map[string]any{"notify_no_data": true}
	remoteRecord := withID(record("cpu-high", "q"), 1)
	remoteRecord.Options = map[string]any{"notify_no_data": false, "created_at": 12345}
	remote := newFakeRemote(remoteRecord)

	summary, err := newTestReconciler(staticDeclared{records: []monitor.Record{declared}}, remote, nil, &recordingWait{}).
		Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, remote.Calls())
	assert.Equal(t, 0, summary.Applied)
	assert.Equal(t, 0, summary.Planned)
}

func TestRun_UpdateScenario(t *testing.T) {
	remote := newFakeRemote(withID(record("a", "avg:x>10"), 17))
	rec := &observe.Recorder{}

	summary, err := newTestReconciler(staticDeclared{records: []monitor.Record{record("a", "avg:x>5")}}, remote, rec, &recordingWait{}).
		Run(context.Background())
	require.NoError(t, err)

	calls := remote.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, ActionUpdate, calls[0].Kind)
	assert.Equal(t, int64(17), calls[0].ID)
	assert.Equal(t, 1, summary.Applied)
	assert.True(t, rec.Contains("Change detected:"))
	assert.True(t, rec.Contains("Found Monitor change: a"))
	assert.True(t, rec.Contains("Successfully updated monitor: a"))
}

func TestRun_DeleteScenario(t *testing.T) {
	remote := newFakeRemote(withID(record("a", "q"), 1), withID(record("b", "q"), 2))
	rec := &observe.Recorder{}

	summary, err := newTestReconciler(staticDeclared{records: []monitor.Record{record("a", "q")}}, remote, rec, &recordingWait{}).
		Run(context.Background())
	require.NoError(t, err)

	calls := remote.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, ActionDelete, calls[0].Kind)
	assert.Equal(t, int64(2), calls[0].ID)
	assert.Equal(t, 1, summary.Applied)
	assert.True(t, rec.Contains("Successfully removed monitor: b"))
}

func TestRun_BothEmpty(t *testing.T) {
	remote := newFakeRemote()
	rec := &observe.Recorder{}

	summary, err := newTestReconciler(staticDeclared{records: []monitor.Record{}}, remote, rec, &recordingWait{}).
		Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, remote.Calls())
	assert.Equal(t, 0, summary.Applied)
	assert.True(t, rec.Contains("Completed. No remotes to manage, and no locals to push."))
	assert.True(t, rec.Contains("Monitor checks complete. 0 updates performed."))
}

func TestRun_IdempotentAndComplete(t *testing.T) {
	declared := []monitor.Record{
		record("a", "q1", "svc"),
		record("b", "q2"),
		record("c", "q3", "env:prod"),
	}
	remote := newFakeRemote(
		withID(record("a", "old"), 1),
		withID(record("stale", "q"), 2),
		withID(record("other-project", "q"), 3),
	)
	// Not tagged with the project, so never touched.
	remote.monitors[2].Tags = []string{"someone-else"}

	r := newTestReconciler(staticDeclared{records: declared}, remote, nil, &recordingWait{})

	first, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, first.Applied)

	listed, err := remote.ListMonitors(context.Background(), testProject)
	require.NoError(t, err)
	byName := monitor.Index(listed)
	assert.Len(t, byName, len(declared))
	for _, d := range declared {
		got, ok := byName[d.Name]
		require.True(t, ok, "missing %s", d.Name)
		assert.False(t, monitor.Differs(d, got), "projection of %s", d.Name)
	}

	calls := len(remote.Calls())
	second, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Planned)
	assert.Equal(t, 0, second.Applied)
	assert.Len(t, remote.Calls(), calls)

	assert.Contains(t, monitor.Names(remote.Monitors()), "other-project")
}

func TestRun_AbandonedActionsDoNotFailTheRun(t *testing.T) {
	remote := newFakeRemote()
	remote.failNext("a", rateLimited(), rateLimited(), rateLimited(), rateLimited())
	remote.failNext("b", rejected("invalid query"))
	rec := &observe.Recorder{}
	wait := &recordingWait{}

	declared := []monitor.Record{record("a", "q"), record("b", "bad"), record("c", "q")}
	summary, err := newTestReconciler(staticDeclared{records: declared}, remote, rec, wait).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Applied)
	assert.Equal(t, 2, summary.Abandoned)
	require.Len(t, summary.Results, 3)
	assert.Equal(t, OutcomeRetryExhausted, summary.Results[0].Outcome)
	assert.Equal(t, OutcomeRejected, summary.Results[1].Outcome)
	assert.Equal(t, OutcomeApplied, summary.Results[2].Outcome)
	assert.Len(t, wait.Waits(), 3)
	assert.True(t, rec.Contains("invalid query"))
	assert.True(t, rec.Contains("Monitor checks complete. 1 updates performed."))
}

func TestRun_StopsWhenCanceled(t *testing.T) {
	remote := newFakeRemote()
	remote.failNext("a", rateLimited())
	rec := &observe.Recorder{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := New(staticDeclared{records: []monitor.Record{record("a", "q"), record("b", "q")}}, remote, remote, rec, Options{
		Project: testProject,
		Retry:   DefaultRetryPolicy,
		Wait:    func(time.Duration) { cancel() },
	})

	summary, err := r.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 2, summary.Planned)
	assert.Equal(t, 1, summary.Applied)
	assert.Len(t, summary.Results, 1)
	assert.Len(t, remote.Calls(), 2)
	assert.Equal(t, []string{"a"}, monitor.Names(remote.Monitors()))
	assert.False(t, rec.Contains("Found new Monitor: b"))
	assert.False(t, rec.Contains("Monitor checks complete."))
}

func TestRun_SnapshotErrors(t *testing.T) {
	t.Run("declared", func(t *testing.T) {
		remote := newFakeRemote(withID(record("a", "q"), 1))
		loadErr := errors.New("boom")

		_, err := newTestReconciler(staticDeclared{err: loadErr}, remote, nil, &recordingWait{}).Run(context.Background())

		var snapErr *SnapshotError
		require.ErrorAs(t, err, &snapErr)
		assert.Equal(t, SourceDeclared, snapErr.Source)
		assert.ErrorIs(t, err, loadErr)
		assert.Empty(t, remote.Calls())
	})

	t.Run("remote", func(t *testing.T) {
		remote := newFakeRemote()
		remote.listErr = rejected("Forbidden")

		_, err := newTestReconciler(staticDeclared{records: []monitor.Record{record("a", "q")}}, remote, nil, &recordingWait{}).
			Run(context.Background())

		var snapErr *SnapshotError
		require.ErrorAs(t, err, &snapErr)
		assert.Equal(t, SourceRemote, snapErr.Source)
		assert.True(t, strings.Contains(err.Error(), "remote monitors"))
		assert.Empty(t, remote.Calls())
	})
}

func TestPlan_DoesNotMutate(t *testing.T) {
	remote := newFakeRemote(withID(record("b", "q"), 2))
	r := newTestReconciler(staticDeclared{records: []monitor.Record{record("a", "q")}}, remote, nil, &recordingWait{})

	plan, err := r.Plan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"create:a", "delete:b"}, kinds(plan))
	assert.Empty(t, remote.Calls())
}

func TestRun_WithMetrics(t *testing.T) {
	remote := newFakeRemote()
	metrics := NewMetrics()
	r := New(staticDeclared{records: []monitor.Record{record("a", "q")}}, remote, remote, nil, Options{
		Project: testProject,
		Retry:   DefaultRetryPolicy,
		Metrics: metrics,
	})

	_, err := r.Run(context.Background())
	require.NoError(t, err)

	families, err := metrics.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
