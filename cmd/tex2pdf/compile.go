package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	tex2pdf "github.com/jcastellanos/go-tex2pdf"
	"github.com/jcastellanos/go-tex2pdf/internal/config"
	"github.com/jcastellanos/go-tex2pdf/internal/container"
	"github.com/jcastellanos/go-tex2pdf/internal/fileutil"
	"github.com/jcastellanos/go-tex2pdf/internal/hints"
	"github.com/jcastellanos/go-tex2pdf/internal/texlog"
)

// Sentinel errors for CLI operations.
var (
	ErrNoArticle          = errors.New("no article specified")
	ErrWorkspaceEmpty     = errors.New("no articles found in workspace")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// Compiler compiles one article subdirectory of the workspace.
type Compiler interface {
	Compile(ctx context.Context, article string) (*tex2pdf.Result, error)
}

// CompileOutcome holds the result of compiling one article.
type CompileOutcome struct {
	Article  string
	Result   *tex2pdf.Result // nil for container runs; output streams live
	Err      error
	Duration time.Duration
}

// runCompileCmd executes the compile command and returns an exit code.
func runCompileCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseCompileFlags("compile", args, env.Stderr)
	if err != nil {
		return ExitUsage
	}

	cfg, err := resolveConfig(&flags.common, env)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	articles, err := resolveArticles(positional, flags.all, cfg)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	compiler, err := newCompiler(flags, cfg, env)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	workers := resolveWorkers(flags.workers)
	outcomes := compileBatch(ctx, compiler, articles, workers)

	failed := printOutcomes(outcomes, cfg, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		return worstExitCode(outcomes)
	}
	return ExitSuccess
}

// resolveConfig builds the effective configuration from file and environment.
// Flag merging happens afterwards so flags win over everything.
func resolveConfig(common *commonFlags, env *Environment) (*config.Config, error) {
	loadDotEnv()
	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	configRef := common.config
	if configRef == "" {
		configRef = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if configRef != "" {
		loaded, err := config.LoadConfig(configRef)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(nil))
			}
			return nil, err
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *compileFlags, cfg *config.Config) {
	if flags.workspace != "" {
		cfg.Workspace = flags.workspace
	}
	if flags.engine.engine != "" {
		cfg.Engine = flags.engine.engine
	}
	if flags.engine.passes != 0 {
		cfg.Passes = flags.engine.passes
	}
	if flags.engine.timeout != "" {
		cfg.Timeout = flags.engine.timeout
	}
	if flags.engine.keepAux {
		cfg.KeepAux = true
	}
	if flags.engine.cleanFirst {
		cfg.CleanFirst = true
	}
	if flags.engine.shellEscape {
		cfg.ShellEscape = true
	}
	if flags.container.local {
		cfg.Container.Disabled = true
	}
	if flags.container.runtime != "" {
		cfg.Container.Runtime = flags.container.runtime
	}
	if flags.container.image != "" {
		cfg.Container.Image = flags.container.image
	}
	if flags.container.network != "" {
		cfg.Container.Network = flags.container.network
	}
	if len(flags.container.dns) > 0 {
		cfg.Container.DNS = flags.container.dns
	}
	if len(flags.container.mount) > 0 {
		cfg.Container.Mounts = append(cfg.Container.Mounts, flags.container.mount...)
	}
}

// resolveArticles determines which article subdirectories to compile.
func resolveArticles(positional []string, all bool, cfg *config.Config) ([]string, error) {
	if all {
		return discoverArticles(cfg.Workspace)
	}

	if len(positional) > 0 {
		return positional, nil
	}
	if cfg.Article != "" {
		return []string{cfg.Article}, nil
	}
	return nil, fmt.Errorf("%w: pass an article name or set article in config", ErrNoArticle)
}

// discoverArticles lists workspace subdirectories that contain a .tex file.
func discoverArticles(workspace string) ([]string, error) {
	entries, err := os.ReadDir(workspace)
	if err != nil {
		return nil, fmt.Errorf("reading workspace: %w%s", err, hints.ForWorkspace(workspace))
	}

	var articles []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if _, err := fileutil.FindTexRoot(filepath.Join(workspace, entry.Name())); err == nil {
			articles = append(articles, entry.Name())
		}
	}
	sort.Strings(articles)

	if len(articles) == 0 {
		return nil, fmt.Errorf("%w: %s%s", ErrWorkspaceEmpty, workspace, hints.ForWorkspace(workspace))
	}
	return articles, nil
}

// resolveWorkers determines the worker count for batch compiles.
// Priority: explicit flag > env var > GOMAXPROCS-based calculation.
func resolveWorkers(flagWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if env := loadEnvConfig(); env.Workers > 0 {
		return env.Workers
	}
	return defaultPoolSize()
}

// newCompiler picks host or container compilation based on config.
func newCompiler(flags *compileFlags, cfg *config.Config, env *Environment) (Compiler, error) {
	if cfg.Container.Disabled {
		return newLocalCompiler(cfg), nil
	}

	var rt container.Runtime
	var err error
	if cfg.Container.Runtime != "" {
		rt = container.New(cfg.Container.Runtime, nil)
	} else {
		rt, err = container.Detect()
		if err != nil {
			return nil, fmt.Errorf("%w%s", err, hints.ForRuntimeMissing())
		}
	}

	return &containerCompiler{
		runtime: rt,
		cfg:     cfg,
		verbose: flags.common.verbose,
		quiet:   flags.common.quiet,
		env:     env,
	}, nil
}

// localCompiler compiles articles on the host using the library service.
type localCompiler struct {
	svc *tex2pdf.Service
	cfg *config.Config
}

func newLocalCompiler(cfg *config.Config) *localCompiler {
	return &localCompiler{
		svc: tex2pdf.New(
			tex2pdf.WithEngine(cfg.Engine),
			tex2pdf.WithPasses(cfg.Passes),
			tex2pdf.WithTimeout(cfg.TimeoutDuration()),
		),
		cfg: cfg,
	}
}

func (l *localCompiler) Compile(ctx context.Context, article string) (*tex2pdf.Result, error) {
	return l.svc.Compile(ctx, tex2pdf.Input{
		Dir:         filepath.Join(l.cfg.Workspace, article),
		KeepAux:     l.cfg.KeepAux,
		CleanFirst:  l.cfg.CleanFirst,
		ShellEscape: l.cfg.ShellEscape,
	})
}

// compileBatch processes articles concurrently with a bounded worker pool.
// Container compiles are serialized per worker; each local worker shares the
// same compiler, which is safe because Service holds no per-compile state.
func compileBatch(ctx context.Context, compiler Compiler, articles []string, workers int) []CompileOutcome {
	if len(articles) == 0 {
		return nil
	}
	if workers > len(articles) {
		workers = len(articles)
	}

	outcomes := make([]CompileOutcome, len(articles))
	jobs := make(chan int, len(articles))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					outcomes[idx] = CompileOutcome{Article: articles[idx], Err: ctx.Err()}
					continue
				}
				start := time.Now()
				result, err := compiler.Compile(ctx, articles[idx])
				outcomes[idx] = CompileOutcome{
					Article:  articles[idx],
					Result:   result,
					Err:      err,
					Duration: time.Since(start),
				}
			}
		}()
	}

	for i := range articles {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return outcomes
}

// printOutcomes reports results and returns the number of failures.
func printOutcomes(outcomes []CompileOutcome, cfg *config.Config, quiet, verbose bool, env *Environment) int {
	var succeeded, failed int

	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", o.Article, o.Err)
			printCompileDiagnosis(o.Err, cfg, env)
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		switch {
		case o.Result == nil:
			fmt.Fprintf(env.Stdout, "Compiled %s\n", o.Article)
		case verbose:
			fmt.Fprintf(env.Stdout, "%s -> %s (%d passes, %v)\n",
				o.Article, o.Result.PDFPath, o.Result.Passes, o.Duration.Round(time.Millisecond))
			for _, warn := range o.Result.Warnings {
				fmt.Fprintf(env.Stdout, "  warning: %s\n", warn)
			}
			if o.Result.BadBoxes > 0 {
				fmt.Fprintf(env.Stdout, "  %d overfull/underfull boxes\n", o.Result.BadBoxes)
			}
		default:
			fmt.Fprintf(env.Stdout, "Created %s\n", o.Result.PDFPath)
			if o.Result.Fallback {
				fmt.Fprintf(env.Stderr, "warning: no main.tex in %s, compiled %s\n",
					o.Article, filepath.Base(o.Result.TexRoot))
			}
		}
	}

	if !quiet && len(outcomes) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}

// printCompileDiagnosis renders error excerpts and hints for a failure.
func printCompileDiagnosis(err error, cfg *config.Config, env *Environment) {
	var compErr *tex2pdf.CompileError
	if errors.As(err, &compErr) && compErr.Report != nil {
		dir := filepath.Dir(compErr.TexRoot)
		for _, rec := range compErr.Report.Errors {
			if rec.File != "" && !filepath.IsAbs(rec.File) {
				rec.File = filepath.Join(dir, rec.File)
			}
			fmt.Fprintf(env.Stderr, "%s:%d: %s\n", filepath.Base(compErr.TexRoot), rec.Line, rec.Message)
			// Excerpt failures are cosmetic; the error lines above stand alone.
			_ = texlog.WriteExcerpt(env.Stderr, rec, shouldColorize(env))
		}
		if compErr.Report.TotalErrors > len(compErr.Report.Errors) {
			fmt.Fprintf(env.Stderr, "... and %d more errors\n",
				compErr.Report.TotalErrors-len(compErr.Report.Errors))
		}
		fmt.Fprintln(env.Stderr, strings.TrimPrefix(hints.ForCompileFailure(compErr.LogPath), "\n"))
		return
	}

	switch {
	case errors.Is(err, tex2pdf.ErrCompileTimeout):
		fmt.Fprintln(env.Stderr, strings.TrimPrefix(hints.ForTimeout(), "\n"))
	case errors.Is(err, tex2pdf.ErrEngineNotFound):
		fmt.Fprintln(env.Stderr, strings.TrimPrefix(hints.ForEngineMissing(cfg.Engine), "\n"))
	case errors.Is(err, tex2pdf.ErrNoTexFile):
		fmt.Fprintln(env.Stderr, strings.TrimPrefix(hints.ForNoTexFile(cfg.Workspace), "\n"))
	case errors.Is(err, container.ErrImageNotFound):
		fmt.Fprintln(env.Stderr, strings.TrimPrefix(hints.ForImageMissing(cfg.Container.Image), "\n"))
	}
}

// shouldColorize reports whether stderr output may carry ANSI colors.
func shouldColorize(env *Environment) bool {
	return env.Stderr == os.Stderr && os.Getenv("NO_COLOR") == "" && os.Getenv("TERM") != "dumb"
}

// worstExitCode maps the batch outcomes to a single exit code, preferring
// the most specific failure.
func worstExitCode(outcomes []CompileOutcome) int {
	code := ExitSuccess
	for _, o := range outcomes {
		if o.Err == nil {
			continue
		}
		c := exitCodeFor(o.Err)
		if code == ExitSuccess || c > code {
			code = c
		}
	}
	if code == ExitSuccess {
		return ExitGeneral
	}
	return code
}
