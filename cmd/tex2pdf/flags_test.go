package main

// Notes:
// - parsing only; how parsed flags override the config is covered in
//   compile_test.go (TestMergeFlags)

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestParseCompileFlags(t *testing.T) {
	t.Parallel()

	f, positional, err := parseCompileFlags("compile", []string{
		"-e", "xelatex",
		"-n", "3",
		"-t", "90s",
		"--keep-aux",
		"--shell-escape",
		"--local",
		"-w", "/tmp/articles",
		"-j", "4",
		"--dns", "1.1.1.1",
		"--dns", "8.8.8.8",
		"--mount", "/fonts:/usr/share/fonts/custom",
		"-v",
		"alpha",
	}, io.Discard)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if f.engine.engine != "xelatex" {
		t.Errorf("engine = %q, want xelatex", f.engine.engine)
	}
	if f.engine.passes != 3 {
		t.Errorf("passes = %d, want 3", f.engine.passes)
	}
	if f.engine.timeout != "90s" {
		t.Errorf("timeout = %q, want 90s", f.engine.timeout)
	}
	if !f.engine.keepAux || !f.engine.shellEscape {
		t.Error("keep-aux and shell-escape should be set")
	}
	if !f.container.local {
		t.Error("local should be set")
	}
	if f.workspace != "/tmp/articles" {
		t.Errorf("workspace = %q", f.workspace)
	}
	if f.workers != 4 {
		t.Errorf("workers = %d, want 4", f.workers)
	}
	if len(f.container.dns) != 2 || f.container.dns[1] != "8.8.8.8" {
		t.Errorf("dns = %v, want two resolvers", f.container.dns)
	}
	if len(f.container.mount) != 1 {
		t.Errorf("mount = %v, want one entry", f.container.mount)
	}
	if !f.common.verbose {
		t.Error("verbose should be set")
	}
	if len(positional) != 1 || positional[0] != "alpha" {
		t.Errorf("positional = %v, want [alpha]", positional)
	}
}

func TestParseCompileFlagsUnknown(t *testing.T) {
	t.Parallel()

	if _, _, err := parseCompileFlags("compile", []string{"--bogus"}, io.Discard); err == nil {
		t.Error("unknown flag should fail parsing")
	}
}

func TestParseErrorsGoToGivenWriter(t *testing.T) {
	t.Parallel()

	var errBuf bytes.Buffer
	if _, _, err := parseCompileFlags("compile", []string{"--bogus"}, &errBuf); err == nil {
		t.Fatal("unknown flag should fail parsing")
	}
	out := errBuf.String()
	if !strings.Contains(out, "bogus") {
		t.Errorf("error output should name the unknown flag, got %q", out)
	}
	if !strings.Contains(out, "Usage: tex2pdf compile") {
		t.Errorf("usage should be printed to the given writer, got %q", out)
	}
}

func TestParseWatchFlags(t *testing.T) {
	t.Parallel()

	f, positional, err := parseWatchFlags([]string{"--interval", "500ms", "-e", "lualatex", "alpha"}, io.Discard)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if f.interval != "500ms" {
		t.Errorf("interval = %q, want 500ms", f.interval)
	}
	if f.compile.engine.engine != "lualatex" {
		t.Errorf("engine = %q, want lualatex", f.compile.engine.engine)
	}
	if len(positional) != 1 || positional[0] != "alpha" {
		t.Errorf("positional = %v, want [alpha]", positional)
	}
}

func TestParseBuildFlags(t *testing.T) {
	t.Parallel()

	f, err := parseBuildFlags([]string{"-t", "tex2pdf:dev", "-q"}, io.Discard)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if f.tag != "tex2pdf:dev" {
		t.Errorf("tag = %q, want tex2pdf:dev", f.tag)
	}
	if !f.common.quiet {
		t.Error("quiet should be set")
	}
}

func TestParseNewFlagsTemplateDefault(t *testing.T) {
	t.Parallel()

	f, positional, err := parseNewFlags([]string{"beta"}, io.Discard)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if f.template != "article" {
		t.Errorf("template = %q, want article", f.template)
	}
	if len(positional) != 1 || positional[0] != "beta" {
		t.Errorf("positional = %v, want [beta]", positional)
	}
}
