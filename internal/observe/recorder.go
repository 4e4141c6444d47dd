package observe

import (
	"strings"
	"sync"
)

// Line is one recorded observation or failure.
type Line struct {
	Failure  bool
	Headline string
	Details  []string
}

// String joins headline and details.
func (l Line) String() string {
	return join(l.Headline, l.Details)
}

// Recorder keeps every line in memory. It is used by tests and by callers
// that want to inspect a run afterwards.
type Recorder struct {
	mu    sync.Mutex
	lines []Line
}

// Observe implements Sink.
func (r *Recorder) Observe(headline string, details ...string) {
	r.record(Line{Headline: headline, Details: details})
}

// Fail implements Sink.
func (r *Recorder) Fail(headline string, details ...string) {
	r.record(Line{Failure: true, Headline: headline, Details: details})
}

func (r *Recorder) record(l Line) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, l)
}

// Lines returns a copy of all recorded lines.
func (r *Recorder) Lines() []Line {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Line, len(r.lines))
	copy(out, r.lines)
	return out
}

// Failures returns only the failure lines.
func (r *Recorder) Failures() []Line {
	var out []Line
	for _, l := range r.Lines() {
		if l.Failure {
			out = append(out, l)
		}
	}
	return out
}

// Contains reports whether any line contains substr.
func (r *Recorder) Contains(substr string) bool {
	for _, l := range r.Lines() {
		if strings.Contains(l.String(), substr) {
			return true
		}
	}
	return false
}
