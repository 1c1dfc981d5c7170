package assets

import (
	"errors"
	"sort"
)

// Resolver tries a custom asset directory first and falls back to the
// embedded assets when the custom location does not carry the asset.
type Resolver struct {
	custom   Loader
	embedded Loader
}

// NewResolver creates a Resolver rooted at customBase. The directory must
// exist; missing individual assets inside it fall back to embedded.
func NewResolver(customBase string) (*Resolver, error) {
	fsLoader, err := NewFSLoader(customBase)
	if err != nil {
		return nil, err
	}
	return &Resolver{custom: fsLoader, embedded: NewEmbeddedLoader()}, nil
}

func (r *Resolver) Dockerfile() (string, error) {
	content, err := r.custom.Dockerfile()
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, ErrDockerfileNotFound) {
		return "", err
	}
	return r.embedded.Dockerfile()
}

func (r *Resolver) Template(name string) (*ArticleTemplate, error) {
	tpl, err := r.custom.Template(name)
	if err == nil {
		return tpl, nil
	}
	// Validation errors propagate; only fall back when the custom
	// directory simply lacks the template.
	if !errors.Is(err, ErrTemplateNotFound) {
		return nil, err
	}
	return r.embedded.Template(name)
}

func (r *Resolver) Templates() []string {
	seen := make(map[string]bool)
	var names []string
	for _, name := range append(r.custom.Templates(), r.embedded.Templates()...) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
