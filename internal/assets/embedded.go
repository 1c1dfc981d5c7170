package assets

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed Dockerfile
var dockerfile string

//go:embed templates/*
var templates embed.FS

// EmbeddedLoader loads assets from the embedded filesystem.
// Implements the Loader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// Dockerfile returns the bundled TeX Live image recipe.
func (e *EmbeddedLoader) Dockerfile() (string, error) {
	return dockerfile, nil
}

// Template returns an embedded article template by name.
func (e *EmbeddedLoader) Template(name string) (*ArticleTemplate, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	mainTex, err := templates.ReadFile("templates/" + name + "/main.tex")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	refsBib, _ := templates.ReadFile("templates/" + name + "/refs.bib")

	return &ArticleTemplate{MainTex: string(mainTex), RefsBib: string(refsBib)}, nil
}

// Templates lists embedded template names.
func (e *EmbeddedLoader) Templates() []string {
	entries, err := templates.ReadDir("templates")
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, strings.TrimSuffix(entry.Name(), "/"))
		}
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ Loader = (*EmbeddedLoader)(nil)
