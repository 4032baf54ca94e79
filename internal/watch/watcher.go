// Package watch hot-reloads a string table file. Readers always see a
// complete table: reloads are published through an atomic pointer swap, and
// a reload that fails to parse or validate keeps the previous table live.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/emberlink/flowstrings/pkg/strtab"
)

// defaultDebounce batches the event bursts editors and atomic renames
// produce for a single save.
const defaultDebounce = 200 * time.Millisecond

// Config configures a Watcher.
type Config struct {
	// Path of the strings.json file to watch.
	Path string
	// Registry used to validate and resolve reloaded tables. Nil selects
	// the built-in common registry.
	Registry strtab.Registry
	// Logger for reload activity. Nil disables logging.
	Logger *zap.SugaredLogger
	// Debounce overrides the event settle window when positive.
	Debounce time.Duration
}

// Watcher watches one string table file and republishes it on change.
type Watcher struct {
	mu       sync.Mutex
	fw       *fsnotify.Watcher
	path     string
	registry strtab.Registry
	log      *zap.SugaredLogger
	debounce time.Duration
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}

	current  atomic.Pointer[strtab.Catalog]
	reloads  atomic.Int64
	failures atomic.Int64
}

// New loads the table at cfg.Path and prepares a watcher for it. The
// initial table must parse and validate; there is no previous table to
// fall back to.
func New(cfg Config) (*Watcher, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	registry := cfg.Registry
	if registry == nil {
		registry = strtab.DefaultRegistry()
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	path, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, err
	}

	catalog, err := loadCatalog(path, registry)
	if err != nil {
		return nil, fmt.Errorf("initial load: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fw:       fw,
		path:     path,
		registry: registry,
		log:      log,
		debounce: debounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	w.current.Store(catalog)
	return w, nil
}

// Current returns the live catalog. Safe to call concurrently with reloads.
func (w *Watcher) Current() *strtab.Catalog {
	return w.current.Load()
}

// Reloads returns the number of successful reloads since Start.
func (w *Watcher) Reloads() int64 { return w.reloads.Load() }

// Failures returns the number of rejected reloads since Start.
func (w *Watcher) Failures() int64 { return w.failures.Load() }

// Start begins watching. Non-blocking; the event loop runs in a goroutine
// until Stop is called or ctx is cancelled. The parent directory is
// watched, not the file itself, so saves done as rename-into-place are
// still observed.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}
	w.log.Infow("watching string table", "path", w.path)

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit. Idempotent.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.fw.Close(); err != nil {
		w.log.Warnw("closing watcher", "err", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	// The timer is armed on the first relevant event and reset on each
	// subsequent one, so a burst of events yields a single reload.
	settle := time.NewTimer(w.debounce)
	if !settle.Stop() {
		<-settle.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			settle.Reset(w.debounce)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warnw("watch error", "err", err)
		case <-settle.C:
			w.reload()
		}
	}
}

// relevant reports whether an event concerns the watched file.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename)
}

// reload loads, validates, and atomically publishes the table. A failure
// leaves the previous table in place.
func (w *Watcher) reload() {
	catalog, err := loadCatalog(w.path, w.registry)
	if err != nil {
		w.failures.Add(1)
		w.log.Warnw("keeping previous table", "path", w.path, "err", err)
		return
	}
	w.current.Store(catalog)
	w.reloads.Add(1)
	w.log.Infow("reloaded string table", "path", w.path, "keys", len(catalog.Keys()))
}

func loadCatalog(path string, registry strtab.Registry) (*strtab.Catalog, error) {
	table, err := strtab.Load(path)
	if err != nil {
		return nil, err
	}
	catalog := strtab.NewCatalog(table, registry)
	if err := catalog.Check(); err != nil {
		return nil, err
	}
	return catalog, nil
}
