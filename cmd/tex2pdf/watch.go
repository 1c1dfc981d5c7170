package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jcastellanos/go-tex2pdf/internal/config"
)

// runWatchCmd executes the watch command and returns an exit code.
// Watch polls for modification time changes rather than using an fs
// notification API: the workspace is often a bind mount or network share
// where inotify events never arrive, and a 1s poll is cheap at article scale.
func runWatchCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseWatchFlags(args, env.Stderr)
	if err != nil {
		return ExitUsage
	}

	cfg, err := resolveConfig(&flags.compile.common, env)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	mergeFlags(&flags.compile, cfg)
	if flags.interval != "" {
		cfg.Watch.Interval = flags.interval
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	articles, err := resolveArticles(positional, false, cfg)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	article := articles[0]

	compiler, err := newCompiler(&flags.compile, cfg, env)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	logger := newLogger(env.Stderr, flags.compile.common.verbose)
	if err := watchLoop(ctx, compiler, article, cfg, logger); err != nil {
		if errors.Is(err, context.Canceled) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// watchLoop compiles once, then recompiles whenever a watched file changes.
// Runs until the context is canceled.
func watchLoop(ctx context.Context, compiler Compiler, article string, cfg *config.Config, logger *log.Logger) error {
	dir := filepath.Join(cfg.Workspace, article)
	interval := cfg.WatchInterval()

	logger.Info("watching", "article", article, "interval", interval)

	lastState, err := snapshotSources(dir, cfg.Watch.Extensions)
	if err != nil {
		return err
	}
	compileOnce(ctx, compiler, article, logger)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping watch")
			return ctx.Err()
		case <-ticker.C:
			state, err := snapshotSources(dir, cfg.Watch.Extensions)
			if err != nil {
				logger.Warn("scan failed", "err", err)
				continue
			}
			if changed := diffSnapshots(lastState, state); changed != "" {
				logger.Info("change detected", "file", changed)
				lastState = state
				compileOnce(ctx, compiler, article, logger)
			} else {
				lastState = state
			}
		}
	}
}

// compileOnce runs a single compile and logs the outcome without stopping
// the watch loop on failure.
func compileOnce(ctx context.Context, compiler Compiler, article string, logger *log.Logger) {
	start := time.Now()
	result, err := compiler.Compile(ctx, article)
	elapsed := time.Since(start).Round(time.Millisecond)

	switch {
	case err != nil:
		logger.Error("compile failed", "article", article, "err", err)
	case result != nil:
		logger.Info("compiled", "pdf", result.PDFPath, "passes", result.Passes, "took", elapsed)
	default:
		logger.Info("compiled", "article", article, "took", elapsed)
	}
}

// snapshotSources records the latest modification time per watched file.
func snapshotSources(dir string, extensions []string) (map[string]time.Time, error) {
	state := make(map[string]time.Time)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !watchedExtension(path, extensions) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			// File vanished between listing and stat; skip it.
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		state[path] = info.ModTime()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	return state, nil
}

// watchedExtension reports whether path has one of the watched extensions.
func watchedExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// diffSnapshots returns the first path that is new or has a changed mtime,
// or "" when nothing relevant changed. Deleted files also count as changes.
func diffSnapshots(old, current map[string]time.Time) string {
	for path, mtime := range current {
		if prev, ok := old[path]; !ok || !prev.Equal(mtime) {
			return path
		}
	}
	for path := range old {
		if _, ok := current[path]; !ok {
			return path
		}
	}
	return ""
}
