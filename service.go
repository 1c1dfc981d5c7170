package tex2pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jcastellanos/go-tex2pdf/internal/fileutil"
	"github.com/jcastellanos/go-tex2pdf/internal/texlog"
)

// Service compiles LaTeX article directories by running a TeX engine.
// A Service is stateless between compiles and safe to reuse sequentially;
// for parallel batches use one Service per worker.
type Service struct {
	cfg    serviceConfig
	runner CommandRunner
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithEngine, WithTimeout).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			engine:  EnginePDFLaTeX,
			passes:  DefaultPasses,
			timeout: defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.runner == nil {
		s.runner = &ExecRunner{}
	}

	return s
}

// Compile runs the full compilation flow for one article directory.
// The context bounds the whole compile; each engine pass additionally gets
// the configured per-pass timeout.
func (s *Service) Compile(ctx context.Context, input Input) (*Result, error) {
	start := time.Now()

	if err := input.Validate(); err != nil {
		return nil, err
	}
	if info, err := os.Stat(input.Dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDirNotFound, input.Dir)
	}

	root, err := fileutil.FindTexRoot(input.Dir)
	if err != nil {
		if errors.Is(err, fileutil.ErrNoTexFile) {
			return nil, fmt.Errorf("%w: %s", ErrNoTexFile, input.Dir)
		}
		return nil, err
	}

	engine := s.cfg.engine
	if input.Engine != "" {
		engine = strings.ToLower(input.Engine)
	}
	passes := s.cfg.passes
	if input.Passes != 0 {
		passes = input.Passes
	}

	if input.CleanFirst {
		if _, err := CleanAux(root.Path); err != nil {
			return nil, err
		}
	}

	base := strings.TrimSuffix(root.Path, filepath.Ext(root.Path))

	result := &Result{
		TexRoot:  root.Path,
		Fallback: root.Fallback,
	}

	var report *texlog.Report
	justRanBibtex := false

	for pass := 1; pass <= passes; pass++ {
		output, runErr := s.runPass(ctx, engine, input, root.Path)
		result.Passes = pass
		report = texlog.Parse(strings.NewReader(output))

		if runErr != nil || report.HasErrors() {
			return nil, s.compileError(ctx, runErr, root.Path, base, report)
		}

		// Insert a bibtex pass once, after the first successful run,
		// when the aux file shows citations.
		if pass == 1 && !justRanBibtex {
			ran, warn := s.runBibtex(ctx, input.Dir, base)
			result.RanBibtex = ran
			justRanBibtex = ran
			if warn != "" {
				result.Warnings = append(result.Warnings, warn)
			}
			if ran {
				continue // the next pass must pick up the .bbl
			}
		} else {
			justRanBibtex = false
		}

		if !report.NeedsRerun {
			break
		}
	}

	pdfPath := base + ".pdf"
	info, err := os.Stat(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("%w: expected %s", ErrPDFMissing, pdfPath)
	}
	result.PDFPath = pdfPath
	result.PDFSize = info.Size()
	result.Warnings = append(result.Warnings, report.Warnings...)
	result.BadBoxes = report.BadBoxes
	result.Duration = time.Since(start)

	// Aux files are only cleaned after success; a failed run keeps its log.
	if !input.KeepAux {
		if _, err := CleanAux(root.Path); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// runPass executes one engine run in the article directory.
func (s *Service) runPass(ctx context.Context, engine string, input Input, texPath string) (string, error) {
	passCtx, cancel := context.WithTimeout(ctx, s.cfg.timeout)
	defer cancel()

	args := []string{"-interaction=nonstopmode", "-file-line-error"}
	if input.ShellEscape {
		args = append(args, "-shell-escape")
	}
	args = append(args, filepath.Base(texPath))

	return s.runner.Run(passCtx, input.Dir, engine, args...)
}

// runBibtex runs bibtex when the aux file references citations.
// Bibtex failures are downgraded to a warning: a missing bibliography
// still yields a usable PDF with unresolved citations.
func (s *Service) runBibtex(ctx context.Context, dir, base string) (ran bool, warning string) {
	auxContent, err := os.ReadFile(base + ".aux")
	if err != nil || !texlog.HasCitations(auxContent) {
		return false, ""
	}

	bibCtx, cancel := context.WithTimeout(ctx, s.cfg.timeout)
	defer cancel()

	if _, err := s.runner.Run(bibCtx, dir, "bibtex", filepath.Base(base)); err != nil {
		return false, fmt.Sprintf("bibtex failed: %v", err)
	}
	return true, ""
}

// compileError maps a failed pass to the right sentinel.
func (s *Service) compileError(ctx context.Context, runErr error, texRoot, base string, report *texlog.Report) error {
	switch {
	case errors.Is(runErr, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s after %s%s", ErrCompileTimeout, texRoot, s.cfg.timeout, timeoutDetail(ctx))
	case errors.Is(runErr, context.Canceled):
		return runErr
	case errors.Is(runErr, ErrEngineNotFound):
		return runErr
	}
	return &CompileError{
		TexRoot: texRoot,
		LogPath: base + ".log",
		Report:  report,
	}
}

// timeoutDetail distinguishes a per-pass timeout from caller cancellation
// that raced with it.
func timeoutDetail(ctx context.Context) string {
	if ctx.Err() != nil {
		return " (parent context expired)"
	}
	return ""
}
