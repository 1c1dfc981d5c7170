package main

// Notes:
// - The poll-based change detection is pure given a snapshot pair, so most
//   coverage is on snapshotSources/diffSnapshots; the loop itself is tested
//   once with a canceled context to pin clean shutdown

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jcastellanos/go-tex2pdf/internal/config"
)

func TestWatchedExtension(t *testing.T) {
	t.Parallel()

	exts := config.DefaultWatchExtensions

	tests := []struct {
		path string
		want bool
	}{
		{"main.tex", true},
		{"bib/refs.bib", true},
		{"style.sty", true},
		{"beamer.cls", true},
		{"Main.TEX", true},
		{"main.pdf", false},
		{"main.aux", false},
		{"img/figure.png", false},
	}

	for _, tt := range tests {
		if got := watchedExtension(tt.path, exts); got != tt.want {
			t.Errorf("watchedExtension(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestSnapshotSources(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"main.tex", "notes.md", "main.pdf"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "bib"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bib", "refs.bib"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	state, err := snapshotSources(dir, config.DefaultWatchExtensions)
	if err != nil {
		t.Fatalf("snapshotSources failed: %v", err)
	}

	if len(state) != 2 {
		t.Errorf("snapshot has %d entries, want 2 (main.tex, refs.bib)", len(state))
	}
	if _, ok := state[filepath.Join(dir, "main.tex")]; !ok {
		t.Error("main.tex missing from snapshot")
	}
	if _, ok := state[filepath.Join(dir, "bib", "refs.bib")]; !ok {
		t.Error("nested refs.bib missing from snapshot")
	}
}

func TestDiffSnapshots(t *testing.T) {
	t.Parallel()

	now := time.Now()
	later := now.Add(time.Second)

	base := map[string]time.Time{"a.tex": now, "b.bib": now}

	tests := []struct {
		name    string
		current map[string]time.Time
		want    string
	}{
		{"unchanged", map[string]time.Time{"a.tex": now, "b.bib": now}, ""},
		{"modified", map[string]time.Time{"a.tex": later, "b.bib": now}, "a.tex"},
		{"added", map[string]time.Time{"a.tex": now, "b.bib": now, "c.tex": now}, "c.tex"},
		{"deleted", map[string]time.Time{"a.tex": now}, "b.bib"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := diffSnapshots(base, tt.current); got != tt.want {
				t.Errorf("diffSnapshots = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWatchLoopStopsOnCancel(t *testing.T) {
	t.Parallel()

	ws := makeWorkspace(t, map[string][]string{"alpha": {"main.tex"}})
	cfg := config.DefaultConfig()
	cfg.Workspace = ws
	cfg.Watch.Interval = "10ms"

	compiler := &mockCompiler{}
	logger := newLogger(io.Discard, false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, compiler, "alpha", cfg, logger)
	}()

	// Let the initial compile happen, then stop.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("watchLoop returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watchLoop did not stop after cancel")
	}

	compiler.mu.Lock()
	defer compiler.mu.Unlock()
	if len(compiler.compiled) < 1 {
		t.Error("watchLoop should compile once on startup")
	}
}

func TestWatchLoopRecompilesOnChange(t *testing.T) {
	t.Parallel()

	ws := makeWorkspace(t, map[string][]string{"alpha": {"main.tex"}})
	cfg := config.DefaultConfig()
	cfg.Workspace = ws
	cfg.Watch.Interval = "10ms"

	compiler := &mockCompiler{}
	logger := newLogger(io.Discard, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, compiler, "alpha", cfg, logger)
	}()

	time.Sleep(50 * time.Millisecond)

	// Touch the source with a future mtime so the poll sees a change even
	// on filesystems with coarse timestamps.
	texPath := filepath.Join(ws, "alpha", "main.tex")
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(texPath, future, future); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		compiler.mu.Lock()
		n := len(compiler.compiled)
		compiler.mu.Unlock()
		if n >= 2 {
			cancel()
			<-done
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("watchLoop did not recompile after a source change")
}
