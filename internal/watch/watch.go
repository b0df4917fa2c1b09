// Package watch re-runs a callback whenever a table source may have changed.
// Local sources (files and directories) are watched with fsnotify; remote
// sources are polled on a cron schedule. Callbacks never overlap.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"

	"sheetgen/errs"
	"sheetgen/internal/logger"
	"sheetgen/source"
)

const (
	// DefaultDebounce is the quiet period after the last file event.
	DefaultDebounce = 500 * time.Millisecond
	// DefaultSchedule polls remote sources.
	DefaultSchedule = "@every 5m"
)

// Func is the reload callback. reason is "start", "change" or "schedule".
type Func func(ctx context.Context, reason string) error

// Config tunes a Watcher.
type Config struct {
	Debounce time.Duration
	Schedule string
}

// ConfigFor reads the "schedule" option of a source spec.
func ConfigFor(spec source.Spec) Config {
	return Config{
		Debounce: DefaultDebounce,
		Schedule: spec.Option("schedule", DefaultSchedule),
	}
}

// Watcher serializes reloads.
type Watcher struct {
	cfg Config
	log *logger.Logger
	fn  Func
	mu  sync.Mutex
}

// New creates a watcher.
func New(cfg Config, log *logger.Logger, fn Func) *Watcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	if cfg.Schedule == "" {
		cfg.Schedule = DefaultSchedule
	}

	if log == nil {
		log = logger.Nop()
	}

	return &Watcher{cfg: cfg, log: log, fn: fn}
}

// Run triggers once, then watches spec until ctx is done.
func (w *Watcher) Run(ctx context.Context, spec source.Spec) error {
	kind := spec.Kind
	if kind == "" {
		kind = source.Detect(spec.Locator)
	}

	info, ok := source.Lookup(kind)
	if !ok {
		return errs.Newf(errs.KindInvalidConfig, "unknown source kind %q", kind)
	}

	w.trigger(ctx, "start")

	if info.Local {
		return w.Path(ctx, spec.Locator)
	}

	return w.Schedule(ctx)
}

// trigger runs the callback under the lock; failures are logged only so
// the watch keeps going.
func (w *Watcher) trigger(ctx context.Context, reason string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	w.log.Debugf("reload: %s", reason)

	if err := w.fn(ctx, reason); err != nil {
		w.log.Err(err, "reload failed")
	}
}

// Path watches a file or a directory of CSV files. Editors usually replace
// files on save, so the parent directory is watched and events are matched
// by name.
func (w *Watcher) Path(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	st, err := os.Stat(abs)
	if err != nil {
		return source.Unavailable(path, "watch", err)
	}

	dir := filepath.Dir(abs)
	match := func(name string) bool { return name == abs }

	if st.IsDir() {
		dir = abs
		match = func(name string) bool {
			return strings.EqualFold(filepath.Ext(name), ".csv")
		}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return source.Unavailable(path, "watch", err)
	}

	w.log.Infof("watching %s", abs)

	timer := time.NewTimer(w.cfg.Debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}

			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if !match(filepath.Clean(ev.Name)) {
				continue
			}

			timer.Reset(w.cfg.Debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}

			w.log.Err(err, "watch error")

		case <-timer.C:
			w.trigger(ctx, "change")
		}
	}
}

// Schedule triggers on the configured cron schedule.
func (w *Watcher) Schedule(ctx context.Context) error {
	cl := cronLogger{w.log}
	c := cron.New(cron.WithLogger(cl), cron.WithChain(cron.SkipIfStillRunning(cl)))

	if _, err := c.AddFunc(w.cfg.Schedule, func() { w.trigger(ctx, "schedule") }); err != nil {
		return errs.Wrap(errs.KindInvalidConfig, fmt.Sprintf("invalid schedule %q", w.cfg.Schedule), err)
	}

	w.log.Infof("polling on %s", w.cfg.Schedule)

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()

	return nil
}

// cronLogger adapts the logger to cron.Logger.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debugf("cron: %s %v", msg, keysAndValues)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Err(err, fmt.Sprintf("cron: %s %v", msg, keysAndValues))
}
