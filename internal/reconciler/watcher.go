package reconciler

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"alertstate/internal/declared"
	"alertstate/pkg/logging"
)

// DefaultDebounce is how long the watcher waits for further changes before
// triggering a run.
const DefaultDebounce = 500 * time.Millisecond

// Watcher re-runs a full reconciliation whenever monitor files in the
// project directory change. Runs are serialized: a change seen while a run
// is in progress triggers one more run after it.
type Watcher struct {
	mu sync.Mutex

	dir      string
	debounce time.Duration
	timer    *time.Timer
	trigger  chan struct{}
	ready    chan struct{}
}

// NewWatcher creates a watcher for dir.
func NewWatcher(dir string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		trigger:  make(chan struct{}, 1),
		ready:    make(chan struct{}),
	}
}

// Ready is closed once the directory is being watched.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches the directory until ctx is done, calling run after each burst
// of changes. Errors from run are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, run func(ctx context.Context) error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return err
	}
	close(w.ready)
	logging.Info("Watcher", "Watching %s for monitor changes", w.dir)

	var wg sync.WaitGroup
	defer wg.Wait()

	finished := make(chan struct{}, 1)
	running, pending := false, false
	start := func() {
		running = true
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := run(ctx); err != nil && ctx.Err() == nil {
				logging.Error("Watcher", err, "Reconciliation run failed")
			}
			finished <- struct{}{}
		}()
	}

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			logging.Info("Watcher", "Stopped watching %s", w.dir)
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logging.Error("Watcher", err, "Filesystem watcher error")

		case <-w.trigger:
			if running {
				pending = true
				continue
			}
			start()

		case <-finished:
			running = false
			if pending {
				pending = false
				start()
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !declared.IsMonitorFile(event.Name) {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	logging.Debug("Watcher", "Detected %s on %s", event.Op, event.Name)
	w.schedule()
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.trigger <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
