package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestFilterMatch(t *testing.T) {
	tests := []struct {
		name string
		f    filter
		ev   fsnotify.Event
		want bool
	}{
		{"write lp", filter{ext: ".lp"}, fsnotify.Event{Name: "a/b.lp", Op: fsnotify.Write}, true},
		{"create lp", filter{ext: ".lp"}, fsnotify.Event{Name: "b.lp", Op: fsnotify.Create}, true},
		{"other ext", filter{ext: ".lp"}, fsnotify.Event{Name: "b.txt", Op: fsnotify.Write}, false},
		{"chmod only", filter{ext: ".lp"}, fsnotify.Event{Name: "b.lp", Op: fsnotify.Chmod}, false},
		{"single file", filter{ext: ".lp", only: "d/a.lp"}, fsnotify.Event{Name: "d/a.lp", Op: fsnotify.Rename}, true},
		{"sibling", filter{ext: ".lp", only: "d/a.lp"}, fsnotify.Event{Name: "d/b.lp", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.match(tt.ev); got != tt.want {
				t.Fatalf("match = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunReportsChanges(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.lp")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan []string, 8)
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, dir, Options{Debounce: 20 * time.Millisecond}, func(_ context.Context, changed []string) {
			calls <- changed
		})
	}()

	select {
	case first := <-calls:
		if first != nil {
			t.Fatalf("initial run got %v", first)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no initial run")
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte("x = 1"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case changed := <-calls:
		if len(changed) != 1 || changed[0] != target {
			t.Fatalf("changed = %v, want [%s]", changed, target)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("change not reported")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestRunMissingRoot(t *testing.T) {
	err := Run(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{}, func(context.Context, []string) {
		t.Fatal("fn must not run")
	})
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}
