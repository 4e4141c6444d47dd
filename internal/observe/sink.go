package observe

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/jedib0t/go-pretty/v6/text"

	"alertstate/pkg/logging"
)

// Sink receives human readable progress and error lines from a run.
//
// Observe reports what was found, what changed and what was applied. The
// headline is the main line; details are printed beneath it. Fail reports a
// problem the run recovered from, such as an abandoned mutation.
type Sink interface {
	Observe(headline string, details ...string)
	Fail(headline string, details ...string)
}

// ConsoleSink writes observations to out and failures to errOut, coloured
// like a terminal report when colour is enabled.
type ConsoleSink struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	color  bool
	quiet  bool
}

// ConsoleOptions configures a ConsoleSink.
type ConsoleOptions struct {
	// Color enables ANSI colours.
	Color bool
	// Quiet suppresses observations; failures are always written.
	Quiet bool
}

// NewConsoleSink creates a console sink writing to out and errOut.
func NewConsoleSink(out, errOut io.Writer, opts ConsoleOptions) *ConsoleSink {
	return &ConsoleSink{
		out:    out,
		errOut: errOut,
		color:  opts.Color,
		quiet:  opts.Quiet,
	}
}

// ColorEnabled reports whether colour output should be used on w, honouring
// NO_COLOR and falling back to plain output for anything but a terminal.
func ColorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Observe implements Sink.
func (s *ConsoleSink) Observe(headline string, details ...string) {
	if s.quiet {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	fmt.Fprintln(s.out, s.paint(text.Colors{text.FgHiMagenta, text.Bold}, headline))
	for _, d := range details {
		fmt.Fprintln(s.out, s.paint(text.Colors{text.FgHiCyan}, d))
	}
}

// Fail implements Sink.
func (s *ConsoleSink) Fail(headline string, details ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fmt.Fprintln(s.errOut, s.paint(text.Colors{text.FgHiRed, text.Bold}, headline))
	for _, d := range details {
		fmt.Fprintln(s.errOut, s.paint(text.Colors{text.FgRed}, d))
	}
}

func (s *ConsoleSink) paint(colors text.Colors, line string) string {
	if !s.color || line == "" {
		return line
	}
	return colors.Sprint(line)
}

// LogSink forwards observations to pkg/logging, for non-interactive runs.
type LogSink struct {
	Subsystem string
}

// Observe implements Sink.
func (s LogSink) Observe(headline string, details ...string) {
	logging.Info(s.subsystem(), "%s", join(headline, details))
}

// Fail implements Sink.
func (s LogSink) Fail(headline string, details ...string) {
	logging.Error(s.subsystem(), nil, "%s", join(headline, details))
}

func (s LogSink) subsystem() string {
	if s.Subsystem == "" {
		return "Reconciler"
	}
	return s.Subsystem
}

func join(headline string, details []string) string {
	if len(details) == 0 {
		return headline
	}
	return headline + " " + strings.Join(details, "; ")
}

// Multi fans every line out to all sinks.
type Multi []Sink

// Observe implements Sink.
func (m Multi) Observe(headline string, details ...string) {
	for _, s := range m {
		s.Observe(headline, details...)
	}
}

// Fail implements Sink.
func (m Multi) Fail(headline string, details ...string) {
	for _, s := range m {
		s.Fail(headline, details...)
	}
}

// Discard drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Observe(string, ...string) {}
func (discard) Fail(string, ...string)    {}
