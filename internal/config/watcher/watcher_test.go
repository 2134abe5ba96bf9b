package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

// waitForCount polls until the reload counter reaches want.
func waitForCount(t *testing.T, c *atomic.Int32, want int32) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.Load() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("reload count = %d, want %d", c.Load(), want)
}

func TestWatcher_DebounceSingleReload(t *testing.T) {
	var count atomic.Int32
	w := New("/tmp/settings.ini", func() { count.Add(1) }, WithDebounce(30*time.Millisecond))
	w.watching = true
	defer w.Stop()

	// Three rapid notifications, one armed timer.
	w.bump()
	w.bump()
	w.bump()

	waitForCount(t, &count, 1)

	// No second reload from the extra notifications.
	time.Sleep(100 * time.Millisecond)
	if got := count.Load(); got != 1 {
		t.Errorf("reload count = %d, want 1", got)
	}

	w.mu.Lock()
	pending := w.pending
	w.mu.Unlock()
	if pending != nil {
		t.Error("pending timer not cleared after fire")
	}
}

func TestWatcher_SlotReopensAfterFire(t *testing.T) {
	var count atomic.Int32
	w := New("/tmp/settings.ini", func() { count.Add(1) }, WithDebounce(20*time.Millisecond))
	w.watching = true
	defer w.Stop()

	w.bump()
	waitForCount(t, &count, 1)

	w.bump()
	waitForCount(t, &count, 2)
}

func TestWatcher_NotificationDuringReloadDropped(t *testing.T) {
	var count atomic.Int32
	reload := func() {
		count.Add(1)
		time.Sleep(80 * time.Millisecond)
	}
	w := New("/tmp/settings.ini", reload, WithDebounce(20*time.Millisecond))
	w.watching = true
	defer w.Stop()

	w.bump()
	// Land inside the running reload: timer fires at ~20ms, reload runs
	// until ~100ms.
	time.Sleep(50 * time.Millisecond)
	w.bump()

	time.Sleep(250 * time.Millisecond)
	if got := count.Load(); got != 1 {
		t.Errorf("reload count = %d, want 1", got)
	}
}

func TestWatcher_StopDisposesPendingTimer(t *testing.T) {
	var count atomic.Int32
	w := New("/tmp/settings.ini", func() { count.Add(1) }, WithDebounce(50*time.Millisecond))
	w.watching = true

	w.bump()
	w.Stop()

	time.Sleep(150 * time.Millisecond)
	if got := count.Load(); got != 0 {
		t.Errorf("reload count after Stop = %d, want 0", got)
	}
}

func TestWatcher_StopIdempotent(t *testing.T) {
	w := New("/tmp/settings.ini", func() {})

	// Stop before Start and double Stop are both no-ops.
	w.Stop()
	w.Stop()

	if w.IsWatching() {
		t.Error("IsWatching() = true, want false")
	}
}

func TestWatcher_PanickingReloadRecovered(t *testing.T) {
	var count atomic.Int32
	reload := func() {
		count.Add(1)
		panic("boom")
	}
	w := New("/tmp/settings.ini", reload, WithDebounce(20*time.Millisecond))
	w.watching = true
	defer w.Stop()

	w.bump()
	waitForCount(t, &count, 1)

	// The slot reopens despite the panic.
	w.bump()
	waitForCount(t, &count, 2)
}

func TestWatcher_StartErrorOnMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent", "settings.ini")
	w := New(path, func() {})

	if err := w.Start(); err == nil {
		w.Stop()
		t.Fatal("Start() error = nil, want error for missing directory")
	}
	if w.IsWatching() {
		t.Error("IsWatching() = true after failed Start")
	}
}

func TestWatcher_StartIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.ini")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	w := New(path, func() {})
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	if err := w.Start(); err != nil {
		t.Errorf("second Start() error = %v", err)
	}
	if !w.IsWatching() {
		t.Error("IsWatching() = false, want true")
	}
}

func TestWatcher_ReloadOnFileWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.ini")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	var count atomic.Int32
	w := New(path, func() { count.Add(1) }, WithDebounce(50*time.Millisecond))
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	// A burst of writes well inside the debounce window.
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("a = 2\n"), 0o644); err != nil {
			t.Fatalf("writing: %v", err)
		}
	}

	waitForCount(t, &count, 1)

	time.Sleep(200 * time.Millisecond)
	if got := count.Load(); got != 1 {
		t.Errorf("reload count = %d, want 1", got)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.ini")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	var count atomic.Int32
	w := New(path, func() { count.Add(1) }, WithDebounce(30*time.Millisecond))
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("writing: %v", err)
	}

	time.Sleep(200 * time.Millisecond)
	if got := count.Load(); got != 0 {
		t.Errorf("reload count = %d, want 0", got)
	}
}

func TestWatcher_RestartAfterStop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.ini")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	var count atomic.Int32
	w := New(path, func() { count.Add(1) }, WithDebounce(30*time.Millisecond))
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	w.Stop()

	if err := w.Start(); err != nil {
		t.Fatalf("restart error = %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("a = 2\n"), 0o644); err != nil {
		t.Fatalf("writing: %v", err)
	}

	waitForCount(t, &count, 1)
}
