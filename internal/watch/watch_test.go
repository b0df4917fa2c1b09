package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetgen/errs"
	"sheetgen/source"
	"sheetgen/table"
)

type recorder struct {
	mu      sync.Mutex
	reasons []string
	calls   chan string
}

func newRecorder() *recorder {
	return &recorder{calls: make(chan string, 16)}
}

func (r *recorder) fn(_ context.Context, reason string) error {
	r.mu.Lock()
	r.reasons = append(r.reasons, reason)
	r.mu.Unlock()
	r.calls <- reason

	return nil
}

func (r *recorder) next(t *testing.T, timeout time.Duration) string {
	t.Helper()

	select {
	case reason := <-r.calls:
		return reason
	case <-time.After(timeout):
		t.Fatal("callback not called")
		return ""
	}
}

func TestPath_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name\n"), 0o644))

	rec := newRecorder()
	w := New(Config{Debounce: 100 * time.Millisecond}, nil, rec.fn)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- w.Path(ctx, path) }()

	// Give the watcher time to register before touching files.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("Name\nSword\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("Name\nSword\nBow\n"), 0o644))

	assert.Equal(t, "change", rec.next(t, 2*time.Second))

	select {
	case reason := <-rec.calls:
		t.Fatalf("unexpected extra reload %q", reason)
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}

func TestPath_Missing(t *testing.T) {
	w := New(Config{}, nil, newRecorder().fn)

	err := w.Path(context.Background(), filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
	assert.True(t, errs.IsSourceUnavailable(err))
}

func TestSchedule_Invalid(t *testing.T) {
	w := New(Config{Schedule: "every now and then"}, nil, newRecorder().fn)

	err := w.Schedule(context.Background())
	require.Error(t, err)
	assert.True(t, errs.IsInvalidConfig(err))
}

func TestSchedule(t *testing.T) {
	rec := newRecorder()
	w := New(Config{Schedule: "@every 1s"}, nil, rec.fn)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- w.Schedule(ctx) }()

	assert.Equal(t, "schedule", rec.next(t, 3*time.Second))

	cancel()
	require.NoError(t, <-done)
}

func TestTrigger_Serialized(t *testing.T) {
	var running, overlaps int32

	w := New(Config{}, nil, func(context.Context, string) error {
		if atomic.AddInt32(&running, 1) > 1 {
			atomic.AddInt32(&overlaps, 1)
		}

		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&running, -1)

		return nil
	})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			w.trigger(context.Background(), "change")
		}()
	}

	wg.Wait()
	assert.Zero(t, atomic.LoadInt32(&overlaps))
}

func TestRun_LocalStartsWithReload(t *testing.T) {
	source.Register(source.Info{Kind: "watchtest", Label: "test", Local: true},
		func(context.Context, source.Spec) (table.Reader, error) { return table.NewMemory("x"), nil })

	dir := t.TempDir()
	rec := newRecorder()
	w := New(Config{Debounce: 20 * time.Millisecond}, nil, rec.fn)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- w.Run(ctx, source.Spec{Kind: "watchtest", Locator: dir}) }()

	assert.Equal(t, "start", rec.next(t, time.Second))

	cancel()
	require.NoError(t, <-done)
}

func TestConfigFor(t *testing.T) {
	cfg := ConfigFor(source.Spec{Options: map[string]string{"schedule": "@hourly"}})
	assert.Equal(t, "@hourly", cfg.Schedule)
	assert.Equal(t, DefaultDebounce, cfg.Debounce)

	assert.Equal(t, DefaultSchedule, ConfigFor(source.Spec{}).Schedule)
}
