package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// newTestWatcher builds a watcher over a temp tree whose callback records
// every batch it receives. The event loop is not started; tests drive
// handleEvent and flush directly so they stay deterministic.
func newTestWatcher(t *testing.T) (*Watcher, *[][]string) {
	t.Helper()
	root := t.TempDir()
	var batches [][]string
	w, err := New(root, filepath.Join(root, "public"), func(paths []string) {
		batches = append(batches, paths)
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { w.fsw.Close() })
	return w, &batches
}

func writeEvent(w *Watcher, rel string) fsnotify.Event {
	return fsnotify.Event{Name: filepath.Join(w.root, filepath.FromSlash(rel)), Op: fsnotify.Write}
}

func TestFlushWaitsForSettle(t *testing.T) {
	w, batches := newTestWatcher(t)

	w.handleEvent(writeEvent(w, "dashboard_analyse.html"))

	w.flush(time.Now())
	if len(*batches) != 0 {
		t.Fatalf("flush fired before the settle delay: %v", *batches)
	}

	w.flush(time.Now().Add(time.Second))
	if len(*batches) != 1 {
		t.Fatalf("expected 1 batch after settling, got %d", len(*batches))
	}
}

func TestFlushCoalescesBurst(t *testing.T) {
	w, batches := newTestWatcher(t)

	w.handleEvent(writeEvent(w, "holidays/es_mes_holidays.html"))
	w.handleEvent(writeEvent(w, "app_data.js"))
	w.handleEvent(writeEvent(w, "holidays/es_mes_holidays.html"))

	w.flush(time.Now().Add(time.Second))

	if len(*batches) != 1 {
		t.Fatalf("expected one batch for the burst, got %d", len(*batches))
	}
	got := (*batches)[0]
	if len(got) != 2 {
		t.Fatalf("expected 2 distinct paths, got %v", got)
	}
	// Batches come out sorted.
	if filepath.Base(got[0]) != "app_data.js" || filepath.Base(got[1]) != "es_mes_holidays.html" {
		t.Errorf("unexpected batch order: %v", got)
	}
}

func TestFlushHoldsWhileEventsKeepArriving(t *testing.T) {
	w, batches := newTestWatcher(t)

	w.handleEvent(writeEvent(w, "notes.md"))
	first := time.Now()

	// A second change inside the settle window keeps the batch open.
	w.mu.Lock()
	w.pending[filepath.Join(w.root, "notes.md")] = first.Add(700 * time.Millisecond)
	w.mu.Unlock()

	w.flush(first.Add(time.Second))
	if len(*batches) != 0 {
		t.Fatalf("flush fired while the batch was still being written to: %v", *batches)
	}

	w.flush(first.Add(2 * time.Second))
	if len(*batches) != 1 {
		t.Fatalf("expected 1 batch once quiet, got %d", len(*batches))
	}
}

func TestFlushEmptyIsNoop(t *testing.T) {
	w, batches := newTestWatcher(t)
	w.flush(time.Now().Add(time.Hour))
	if len(*batches) != 0 {
		t.Fatalf("flush with no pending changes fired: %v", *batches)
	}
}

func TestHandleEventSkipsChmod(t *testing.T) {
	w, batches := newTestWatcher(t)

	w.handleEvent(fsnotify.Event{Name: filepath.Join(w.root, "page.html"), Op: fsnotify.Chmod})

	w.flush(time.Now().Add(time.Second))
	if len(*batches) != 0 {
		t.Fatalf("chmod event triggered a rebuild: %v", *batches)
	}
}

func TestIgnores(t *testing.T) {
	w, _ := newTestWatcher(t)

	cases := []struct {
		rel  string
		want bool
	}{
		{"dashboard_analyse.html", false},
		{"holidays/es_mes_holidays.html", false},
		{"charts/es_png_chart.png", false},
		{"page.html~", true},
		{".page.html.swp", true},
		{"notes.md.swx", true},
		{"upload.tmp", true},
		{".DS_Store", true},
		{".git/index", true},
		{"node_modules/pkg/index.js", true},
		{"public/style.css", true},
		{"public/holidays/es_mes_holidays.html", true},
	}
	for _, tc := range cases {
		path := filepath.Join(w.root, filepath.FromSlash(tc.rel))
		if got := w.ignores(path); got != tc.want {
			t.Errorf("ignores(%q) = %v, want %v", tc.rel, got, tc.want)
		}
	}
}

func TestIgnoredEventsNeverPend(t *testing.T) {
	w, batches := newTestWatcher(t)

	w.handleEvent(writeEvent(w, ".page.html.swp"))
	w.handleEvent(writeEvent(w, "public/style.css"))

	w.flush(time.Now().Add(time.Second))
	if len(*batches) != 0 {
		t.Fatalf("ignored paths triggered a rebuild: %v", *batches)
	}
}

func TestStartStop(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "holidays"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	w, err := New(root, filepath.Join(root, "public"), func([]string) {}, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	// Second Start is a no-op while running.
	if err := w.Start(ctx); err != nil {
		t.Fatalf("second Start: %v", err)
	}

	w.Stop()
	// Stop after Stop must not panic or block.
	w.Stop()
}
