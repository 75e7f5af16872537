// Package filewatch re-runs work when a watched file changes on disk.
package filewatch

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
)

const (
	defaultDebounce = 300 * time.Millisecond
	tickInterval    = 50 * time.Millisecond
)

// ChangeFunc is called once per debounced burst of writes.
type ChangeFunc func(ctx context.Context, path string)

// Watcher follows a set of files. It watches their parent directories so
// editors that save by rename are still picked up.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	files    map[string]bool
	pending  map[string]time.Time
	debounce time.Duration
	onChange ChangeFunc
	log      *slog.Logger

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

type Option func(*Watcher)

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.log = l }
}

func New(onChange ChangeFunc, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &domain.OpError{Op: "filewatch.new", Kind: domain.KindExecution, Err: err}
	}

	w := &Watcher{
		watcher:  fw,
		files:    map[string]bool{},
		pending:  map[string]time.Time{},
		debounce: defaultDebounce,
		onChange: onChange,
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Add starts following path.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return &domain.OpError{Op: "filewatch.add", Kind: domain.KindInvalidInput, Path: path, Err: err}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(abs)); err != nil {
		return &domain.OpError{Op: "filewatch.add", Kind: domain.KindNotFound, Path: path, Err: err}
	}
	w.files[abs] = true
	w.log.Debug("filewatch.add", "path", abs)
	return nil
}

func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	go w.run(ctx)
}

// Stop ends the event loop and releases the OS watcher. It blocks until the loop exits.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	_ = w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := time.NewTicker(tickInterval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("filewatch.error", "error", err)

		case <-tick.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return
	}

	name := filepath.Clean(ev.Name)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.files[name] {
		return
	}
	w.pending[name] = time.Now()
}

func (w *Watcher) flush(ctx context.Context) {
	now := time.Now()

	w.mu.Lock()
	var due []string
	for p, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			due = append(due, p)
			delete(w.pending, p)
		}
	}
	w.mu.Unlock()

	for _, p := range due {
		w.log.Info("filewatch.changed", "path", p)
		if w.onChange != nil {
			w.onChange(ctx, p)
		}
	}
}
