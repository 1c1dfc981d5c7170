package main

// Notes:
// - Scaffolding uses the embedded template set, so the test doubles as a
//   check that the embed paths resolve

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScaffoldArticle(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv()
	dir := filepath.Join(t.TempDir(), "alpha")

	if err := scaffoldArticle(dir, "article", env); err != nil {
		t.Fatalf("scaffoldArticle failed: %v", err)
	}

	mainTex, err := os.ReadFile(filepath.Join(dir, "main.tex"))
	if err != nil {
		t.Fatalf("main.tex not created: %v", err)
	}
	if !strings.Contains(string(mainTex), `\documentclass`) {
		t.Error("main.tex should contain a documentclass")
	}

	if _, err := os.Stat(filepath.Join(dir, "bib", "refs.bib")); err != nil {
		t.Error("bib/refs.bib not created")
	}
	info, err := os.Stat(filepath.Join(dir, "img"))
	if err != nil || !info.IsDir() {
		t.Error("img/ directory not created")
	}
}

func TestScaffoldArticleExistingDir(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv()
	dir := t.TempDir() // already exists

	if err := scaffoldArticle(dir, "article", env); err == nil {
		t.Error("scaffolding over an existing directory should fail")
	}
}

func TestScaffoldArticleUnknownTemplate(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv()
	dir := filepath.Join(t.TempDir(), "alpha")

	if err := scaffoldArticle(dir, "dissertation", env); err == nil {
		t.Error("unknown template should fail")
	}
	if _, statErr := os.Stat(dir); !os.IsNotExist(statErr) {
		t.Error("failed scaffold should not leave a directory behind")
	}
}

func TestRunNewCmd(t *testing.T) {
	ws := t.TempDir()
	env, stdout, _ := testEnv()

	code := runNewCmd([]string{"--workspace", ws, "beta"}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(stdout.String(), "Created") {
		t.Errorf("stdout = %q, want creation message", stdout.String())
	}
	if _, err := os.Stat(filepath.Join(ws, "beta", "main.tex")); err != nil {
		t.Error("article was not scaffolded")
	}

	env2, _, _ := testEnv()
	if code := runNewCmd([]string{"--workspace", ws, "beta"}, env2); code == ExitSuccess {
		t.Error("scaffolding the same article twice should fail")
	}
}
