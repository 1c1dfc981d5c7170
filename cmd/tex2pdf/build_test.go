package main

// Notes:
// - buildImage stages the embedded Dockerfile into a throwaway context
//   directory; the fake runtime captures the BuildSpec so the test can
//   verify the staging without invoking a real engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jcastellanos/go-tex2pdf/internal/container"
)

func TestBuildImage(t *testing.T) {
	t.Parallel()

	var staged []byte
	rt := &fakeRuntime{onBuild: func(spec container.BuildSpec) error {
		var err error
		staged, err = os.ReadFile(filepath.Join(spec.ContextDir, "Dockerfile"))
		return err
	}}
	env, _, _ := testEnv()

	if err := buildImage(context.Background(), rt, "tex2pdf:test", "", false, env); err != nil {
		t.Fatalf("buildImage failed: %v", err)
	}
	if !strings.Contains(string(staged), "ENTRYPOINT") {
		t.Errorf("staged Dockerfile missing ENTRYPOINT, got %q", staged)
	}

	if len(rt.builds) != 1 {
		t.Fatalf("builds = %d, want 1", len(rt.builds))
	}
	spec := rt.builds[0]
	if spec.Tag != "tex2pdf:test" {
		t.Errorf("tag = %q, want tex2pdf:test", spec.Tag)
	}
	if spec.Output == nil {
		t.Error("output should stream to stdout when not quiet")
	}

	// The context dir is removed after the build; it must have held the
	// Dockerfile while Build ran.
	if spec.ContextDir == "" {
		t.Fatal("context dir not set")
	}
	if _, err := os.Stat(filepath.Join(spec.ContextDir, "Dockerfile")); !os.IsNotExist(err) {
		t.Errorf("context dir %s should be cleaned up after build", spec.ContextDir)
	}
}

func TestBuildImageQuiet(t *testing.T) {
	t.Parallel()

	rt := &fakeRuntime{}
	env, _, _ := testEnv()

	if err := buildImage(context.Background(), rt, "tex2pdf:test", "", true, env); err != nil {
		t.Fatalf("buildImage failed: %v", err)
	}
	if rt.builds[0].Output != nil {
		t.Error("quiet build should not stream runtime output")
	}
}

func TestLoadDockerfileCustomPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Dockerfile.custom")
	if err := os.WriteFile(path, []byte("FROM scratch\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	env, _, _ := testEnv()
	content, err := loadDockerfile(path, env)
	if err != nil {
		t.Fatalf("loadDockerfile failed: %v", err)
	}
	if content != "FROM scratch\n" {
		t.Errorf("content = %q", content)
	}

	if _, err := loadDockerfile(filepath.Join(t.TempDir(), "missing"), env); err == nil {
		t.Error("missing Dockerfile path should fail")
	}
}

func TestBuildImageDockerfileContent(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv()
	dockerfile, err := env.Assets.Dockerfile()
	if err != nil {
		t.Fatalf("loading Dockerfile: %v", err)
	}

	for _, want := range []string{"texlive", "ENTRYPOINT", "tex2pdf", "/workspace"} {
		if !strings.Contains(dockerfile, want) {
			t.Errorf("Dockerfile missing %q", want)
		}
	}
}
