package reconciler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"alertstate/internal/monitor"
)

const testProject = "proj"

// staticDeclared is a DeclaredSource returning fixed records.
type staticDeclared struct {
	records []monitor.Record
	err     error
}

func (s staticDeclared) Load() ([]monitor.Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

type remoteCall struct {
	Kind   ActionKind
	ID     int64
	Record monitor.Record
}

// fakeRemote is an in-memory monitors API. Errors queued in failures are
// returned, one per call, for the named monitor before the call succeeds.
type fakeRemote struct {
	mu       sync.Mutex
	nextID   int64
	monitors []monitor.Record
	calls    []remoteCall
	failures map[string][]error
	listErr  error
}

func newFakeRemote(records ...monitor.Record) *fakeRemote {
	f := &fakeRemote{nextID: 100, failures: map[string][]error{}}
	for _, r := range records {
		r = r.Clone()
		if !r.HasID() {
			f.nextID++
			r.ID = monitor.Int64(f.nextID)
		}
		f.monitors = append(f.monitors, r)
	}
	return f
}

func (f *fakeRemote) failNext(name string, errs ...error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[name] = append(f.failures[name], errs...)
}

func (f *fakeRemote) popFailure(name string) error {
	queue := f.failures[name]
	if len(queue) == 0 {
		return nil
	}
	f.failures[name] = queue[1:]
	return queue[0]
}

func (f *fakeRemote) indexOf(id int64) int {
	for i, m := range f.monitors {
		if m.RemoteID() == id {
			return i
		}
	}
	return -1
}

func (f *fakeRemote) ListMonitors(_ context.Context, project string) ([]monitor.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []monitor.Record{}
	for _, m := range f.monitors {
		if m.HasTag(project) {
			out = append(out, m.Clone())
		}
	}
	return out, nil
}

func (f *fakeRemote) CreateMonitor(_ context.Context, record monitor.Record) (monitor.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, remoteCall{Kind: ActionCreate, Record: record.Clone()})
	if err := f.popFailure(record.Name); err != nil {
		return monitor.Record{}, err
	}
	created := record.Clone()
	f.nextID++
	created.ID = monitor.Int64(f.nextID)
	f.monitors = append(f.monitors, created)
	return created.Clone(), nil
}

func (f *fakeRemote) UpdateMonitor(_ context.Context, id int64, record monitor.Record) (monitor.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, remoteCall{Kind: ActionUpdate, ID: id, Record: record.Clone()})
	i := f.indexOf(id)
	if i < 0 {
		return monitor.Record{}, &monitor.APIError{StatusCode: http.StatusNotFound, Errors: []string{"Monitor not found"}}
	}
	if err := f.popFailure(f.monitors[i].Name); err != nil {
		return monitor.Record{}, err
	}
	updated := record.Clone()
	updated.ID = monitor.Int64(id)
	f.monitors[i] = updated
	return updated.Clone(), nil
}

func (f *fakeRemote) DeleteMonitor(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, remoteCall{Kind: ActionDelete, ID: id})
	i := f.indexOf(id)
	if i < 0 {
		return &monitor.APIError{StatusCode: http.StatusNotFound, Errors: []string{"Monitor not found"}}
	}
	if err := f.popFailure(f.monitors[i].Name); err != nil {
		return err
	}
	f.monitors = append(f.monitors[:i], f.monitors[i+1:]...)
	return nil
}

func (f *fakeRemote) Calls() []remoteCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]remoteCall(nil), f.calls...)
}

func (f *fakeRemote) Monitors() []monitor.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]monitor.Record, len(f.monitors))
	for i, m := range f.monitors {
		out[i] = m.Clone()
	}
	return out
}

// recordingWait replaces the cooldown and remembers every requested wait.
type recordingWait struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (w *recordingWait) Wait(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.waits = append(w.waits, d)
}

func (w *recordingWait) Waits() []time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]time.Duration(nil), w.waits...)
}

func rateLimited() error {
	return &monitor.APIError{StatusCode: http.StatusTooManyRequests, Errors: []string{"Rate limit exceeded"}}
}

func rejected(msg string) error {
	return &monitor.APIError{StatusCode: http.StatusBadRequest, Errors: []string{msg}}
}

func record(name, query string, tags ...string) monitor.Record {
	return monitor.Record{
		Name:     name,
		Message:  "message for " + name,
		Priority: monitor.Int64(1),
		Query:    query,
		Tags:     append([]string{testProject}, tags...),
		Type:     "metric alert",
	}
}

func withID(r monitor.Record, id int64) monitor.Record {
	r.ID = monitor.Int64(id)
	return r
}
