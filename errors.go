package tex2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyDir       = errors.New("article directory cannot be empty")
	ErrDirNotFound    = errors.New("article directory not found")
	ErrNoTexFile      = errors.New("no .tex file found in article directory")
	ErrEngineNotFound = errors.New("TeX engine not found")
	ErrCompileFailed  = errors.New("LaTeX compilation failed")
	ErrCompileTimeout = errors.New("LaTeX compilation timed out")
	ErrPDFMissing     = errors.New("engine exited successfully but produced no PDF")

	// Input validation errors.
	ErrInvalidEngine = errors.New("invalid engine")
	ErrInvalidPasses = errors.New("invalid passes")
)
