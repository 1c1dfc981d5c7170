package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jcastellanos/go-tex2pdf/internal/assets"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and asset loading.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Assets assets.Loader
}

// DefaultEnv returns the production environment with embedded assets.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Assets: defaultAssets(),
	}
}

// defaultAssets honors TEX2PDF_ASSETS for custom Dockerfile and template
// overrides, falling back to the embedded files for anything the custom
// directory does not carry.
func defaultAssets() assets.Loader {
	if dir := os.Getenv("TEX2PDF_ASSETS"); dir != "" {
		if resolver, err := assets.NewResolver(dir); err == nil {
			return resolver
		}
		fmt.Fprintf(os.Stderr, "Warning: TEX2PDF_ASSETS %q is not a directory, using embedded assets\n", dir)
	}
	return assets.NewEmbeddedLoader()
}
