// Package assets provides the bundled Dockerfile and article templates.
// Assets can be loaded from embedded files or a custom filesystem path.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for asset operations.
var (
	// ErrTemplateNotFound indicates the requested article template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrDockerfileNotFound indicates the bundled Dockerfile is missing.
	ErrDockerfileNotFound = errors.New("dockerfile not found")

	// ErrInvalidAssetName indicates the asset name contains invalid characters
	// such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")
)

// ArticleTemplate holds the files scaffolded by `tex2pdf new`.
type ArticleTemplate struct {
	MainTex string // content of main.tex
	RefsBib string // content of bib/refs.bib
}

// Loader loads build and scaffolding assets.
type Loader interface {
	// Dockerfile returns the image build recipe.
	Dockerfile() (string, error)
	// Template returns an article template by name (e.g. "article").
	Template(name string) (*ArticleTemplate, error)
	// Templates lists available template names, used in hints.
	Templates() []string
}

// ValidateAssetName rejects names containing path separators or traversal,
// which would escape the asset directory.
func ValidateAssetName(name string) error {
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// FSLoader loads assets from a user-supplied directory, allowing custom
// Dockerfiles and templates without rebuilding the binary.
type FSLoader struct {
	base string
}

// NewFSLoader creates a loader rooted at base. The directory must exist.
func NewFSLoader(base string) (*FSLoader, error) {
	info, err := os.Stat(base)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBasePath, base)
	}
	return &FSLoader{base: base}, nil
}

func (l *FSLoader) Dockerfile() (string, error) {
	content, err := os.ReadFile(filepath.Join(l.base, "Dockerfile")) // #nosec G304 -- base validated at construction
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrDockerfileNotFound, l.base)
	}
	return string(content), nil
}

func (l *FSLoader) Template(name string) (*ArticleTemplate, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	dir := filepath.Join(l.base, "templates", name)
	mainTex, err := os.ReadFile(filepath.Join(dir, "main.tex")) // #nosec G304 -- name validated above
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	// refs.bib is optional in custom templates.
	refsBib, _ := os.ReadFile(filepath.Join(dir, "refs.bib")) // #nosec G304

	return &ArticleTemplate{MainTex: string(mainTex), RefsBib: string(refsBib)}, nil
}

func (l *FSLoader) Templates() []string {
	entries, err := os.ReadDir(filepath.Join(l.base, "templates"))
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}

// Compile-time interface check.
var _ Loader = (*FSLoader)(nil)
