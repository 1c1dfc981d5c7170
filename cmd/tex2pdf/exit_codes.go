package main

import (
	"errors"
	"os"

	tex2pdf "github.com/jcastellanos/go-tex2pdf"
	"github.com/jcastellanos/go-tex2pdf/internal/config"
	"github.com/jcastellanos/go-tex2pdf/internal/container"
)

// Exit codes for the tex2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful compilation
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitRuntime = 4 // Container runtime or TeX engine errors
	ExitCompile = 5 // LaTeX compilation failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Compile errors (exit 5)
	if errors.Is(err, tex2pdf.ErrCompileFailed) ||
		errors.Is(err, tex2pdf.ErrCompileTimeout) ||
		errors.Is(err, tex2pdf.ErrPDFMissing) {
		return ExitCompile
	}

	// Runtime and engine errors (exit 4)
	if errors.Is(err, tex2pdf.ErrEngineNotFound) ||
		errors.Is(err, container.ErrRuntimeNotFound) ||
		errors.Is(err, container.ErrImageNotFound) ||
		errors.Is(err, container.ErrRunFailed) ||
		errors.Is(err, container.ErrBuildFailed) {
		return ExitRuntime
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, tex2pdf.ErrDirNotFound) ||
		errors.Is(err, tex2pdf.ErrNoTexFile) ||
		errors.Is(err, ErrNoArticle) ||
		errors.Is(err, ErrWorkspaceEmpty) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, tex2pdf.ErrEmptyDir) ||
		errors.Is(err, tex2pdf.ErrInvalidEngine) ||
		errors.Is(err, tex2pdf.ErrInvalidPasses) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidEngine) ||
		errors.Is(err, config.ErrInvalidPasses) ||
		errors.Is(err, config.ErrInvalidTimeout) ||
		errors.Is(err, config.ErrInvalidInterval) ||
		errors.Is(err, config.ErrInvalidMount) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
