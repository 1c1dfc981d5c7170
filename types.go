package tex2pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/jcastellanos/go-tex2pdf/internal/texlog"
)

// Engine names. The engine is invoked as an external process, so the
// constant doubles as the binary name.
const (
	EnginePDFLaTeX = "pdflatex"
	EngineXeLaTeX  = "xelatex"
	EngineLuaLaTeX = "lualatex"
)

// Pass bounds. One pass never resolves cross-references; five is enough
// for anything TeX can converge on.
const (
	MinPasses     = 1
	MaxPasses     = 5
	DefaultPasses = 2
)

// defaultTimeout bounds a single engine pass.
const defaultTimeout = 60 * time.Second

// Input contains compilation parameters for one article directory.
type Input struct {
	Dir         string // article directory (required)
	Engine      string // engine override (optional, empty = service default)
	Passes      int    // pass override (optional, 0 = service default)
	CleanFirst  bool   // remove auxiliary files before compiling
	KeepAux     bool   // keep auxiliary files after a successful compile
	ShellEscape bool   // pass -shell-escape to the engine
}

// Validate checks that input fields are present and within bounds.
func (in Input) Validate() error {
	if in.Dir == "" {
		return ErrEmptyDir
	}
	if in.Engine != "" && !isValidEngine(in.Engine) {
		return fmt.Errorf("%w: %q (must be %s, %s, or %s)",
			ErrInvalidEngine, in.Engine, EnginePDFLaTeX, EngineXeLaTeX, EngineLuaLaTeX)
	}
	if in.Passes != 0 && (in.Passes < MinPasses || in.Passes > MaxPasses) {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidPasses, in.Passes, MinPasses, MaxPasses)
	}
	return nil
}

// isValidEngine checks if name is a known engine (case-insensitive).
func isValidEngine(name string) bool {
	switch strings.ToLower(name) {
	case EnginePDFLaTeX, EngineXeLaTeX, EngineLuaLaTeX:
		return true
	}
	return false
}

// Result holds the outcome of a successful compile.
type Result struct {
	PDFPath    string        // path to the produced PDF
	PDFSize    int64         // PDF size in bytes
	TexRoot    string        // the .tex file that was compiled
	Fallback   bool          // true when main.tex was absent and another .tex was used
	Passes     int           // engine passes actually run
	RanBibtex  bool          // true when a bibtex pass was inserted
	Warnings   []string      // LaTeX Warning lines from the final pass
	BadBoxes   int           // Overfull/Underfull box count from the final pass
	Duration   time.Duration // wall time for the whole compile
}

// CompileError carries the parsed log report of a failed compile so callers
// can render error excerpts. It wraps ErrCompileFailed.
type CompileError struct {
	TexRoot string
	LogPath string // engine .log file, kept for diagnosis
	Report  *texlog.Report
}

func (e *CompileError) Error() string {
	if e.Report != nil && len(e.Report.Errors) > 0 {
		first := e.Report.Errors[0]
		if e.Report.TotalErrors > 1 {
			return fmt.Sprintf("compiling %s: %s (+%d more errors)", e.TexRoot, first.Message, e.Report.TotalErrors-1)
		}
		return fmt.Sprintf("compiling %s: %s", e.TexRoot, first.Message)
	}
	return fmt.Sprintf("compiling %s failed", e.TexRoot)
}

// Unwrap lets errors.Is match ErrCompileFailed.
func (e *CompileError) Unwrap() error { return ErrCompileFailed }

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	engine  string
	passes  int
	timeout time.Duration
}

// WithTimeout sets the per-pass timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("tex2pdf: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithEngine sets the default engine.
// Panics on unknown engine names (programmer error).
func WithEngine(engine string) Option {
	if !isValidEngine(engine) {
		panic("tex2pdf: WithEngine unknown engine " + engine)
	}
	return func(s *Service) {
		s.cfg.engine = strings.ToLower(engine)
	}
}

// WithPasses sets the default number of engine passes.
// Panics when out of bounds (programmer error).
func WithPasses(n int) Option {
	if n < MinPasses || n > MaxPasses {
		panic("tex2pdf: WithPasses out of bounds")
	}
	return func(s *Service) {
		s.cfg.passes = n
	}
}

// WithRunner injects a command runner, used by tests to avoid real
// subprocesses.
func WithRunner(r CommandRunner) Option {
	return func(s *Service) {
		s.runner = r
	}
}
