package assets_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jcastellanos/go-tex2pdf/internal/assets"
)

// ---------------------------------------------------------------------------
// TestResolver - Custom directory with embedded fallback
// ---------------------------------------------------------------------------

func TestResolver_CustomWins(t *testing.T) {
	t.Parallel()

	resolver, err := assets.NewResolver(setupAssetDir(t))
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	df, err := resolver.Dockerfile()
	if err != nil {
		t.Fatalf("Dockerfile() error = %v", err)
	}
	if df != "FROM scratch\n" {
		t.Errorf("Dockerfile() = %q, want the custom file", df)
	}
}

func TestResolver_FallsBackToEmbedded(t *testing.T) {
	t.Parallel()

	// A base dir with templates but no Dockerfile.
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "templates"), 0o755); err != nil {
		t.Fatal(err)
	}

	resolver, err := assets.NewResolver(base)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	df, err := resolver.Dockerfile()
	if err != nil {
		t.Fatalf("Dockerfile() error = %v", err)
	}
	if !strings.Contains(df, "texlive-latex-base") {
		t.Error("fallback should return the embedded Dockerfile")
	}

	tpl, err := resolver.Template("article")
	if err != nil {
		t.Fatalf("Template(article) error = %v", err)
	}
	if !strings.Contains(tpl.MainTex, "\\documentclass") {
		t.Error("fallback should return the embedded article template")
	}
}

func TestResolver_InvalidNameDoesNotFallBack(t *testing.T) {
	t.Parallel()

	resolver, err := assets.NewResolver(setupAssetDir(t))
	if err != nil {
		t.Fatal(err)
	}

	_, err = resolver.Template("../escape")
	if !errors.Is(err, assets.ErrInvalidAssetName) {
		t.Errorf("Template() error = %v, want ErrInvalidAssetName", err)
	}
}

func TestResolver_TemplatesMergesBoth(t *testing.T) {
	t.Parallel()

	resolver, err := assets.NewResolver(setupAssetDir(t))
	if err != nil {
		t.Fatal(err)
	}

	names := resolver.Templates()
	want := map[string]bool{"article": false, "minimal": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("Templates() = %v, missing %q", names, name)
		}
	}
}

func TestNewResolver_InvalidBase(t *testing.T) {
	t.Parallel()

	_, err := assets.NewResolver(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, assets.ErrInvalidBasePath) {
		t.Errorf("NewResolver() error = %v, want ErrInvalidBasePath", err)
	}
}
