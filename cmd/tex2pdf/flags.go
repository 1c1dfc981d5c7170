package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// engineFlags holds compilation engine flags.
type engineFlags struct {
	engine      string
	passes      int
	timeout     string
	keepAux     bool
	cleanFirst  bool
	shellEscape bool
}

// containerFlags holds container execution flags.
type containerFlags struct {
	local   bool
	runtime string
	image   string
	network string
	dns     []string
	mount   []string
}

// compileFlags holds all flags for the compile command.
type compileFlags struct {
	common    commonFlags
	engine    engineFlags
	container containerFlags
	workspace string
	workers   int
	all       bool
}

// watchFlags holds all flags for the watch command.
type watchFlags struct {
	compile  compileFlags
	interval string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common     commonFlags
	tag        string
	dockerfile string
}

// newFlags holds all flags for the new command.
type newFlags struct {
	common    commonFlags
	workspace string
	template  string
}

// cleanFlags holds all flags for the clean command.
type cleanFlags struct {
	common    commonFlags
	workspace string
	all       bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show engine output and timing")
}

// addEngineFlags adds engine flags to a FlagSet.
func addEngineFlags(fs *flag.FlagSet, f *engineFlags) {
	fs.StringVarP(&f.engine, "engine", "e", "", "TeX engine: pdflatex, xelatex, lualatex")
	fs.IntVarP(&f.passes, "passes", "n", 0, "engine passes per compile (1-5, 0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-pass timeout (e.g., 60s, 2m)")
	fs.BoolVar(&f.keepAux, "keep-aux", false, "keep auxiliary files after success")
	fs.BoolVar(&f.cleanFirst, "clean-first", false, "remove auxiliary files before compiling")
	fs.BoolVar(&f.shellEscape, "shell-escape", false, "pass -shell-escape to the engine")
}

// addContainerFlags adds container flags to a FlagSet.
func addContainerFlags(fs *flag.FlagSet, f *containerFlags) {
	fs.BoolVar(&f.local, "local", false, "compile on the host instead of in a container")
	fs.StringVar(&f.runtime, "runtime", "", "container runtime: docker, podman (default auto)")
	fs.StringVar(&f.image, "image", "", "container image for compilation")
	fs.StringVar(&f.network, "network", "", "container network mode")
	fs.StringSliceVar(&f.dns, "dns", nil, "container DNS resolvers")
	fs.StringSliceVar(&f.mount, "mount", nil, "extra host:container bind mounts")
}

// parseCompileFlags parses compile command flags and returns positional args.
func parseCompileFlags(name string, args []string, errw io.Writer) (*compileFlags, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(errw)
	f := &compileFlags{}

	fs.StringVarP(&f.workspace, "workspace", "w", "", "workspace directory holding article subdirectories")
	fs.IntVarP(&f.workers, "workers", "j", 0, "parallel workers for --all (0 = auto)")
	fs.BoolVar(&f.all, "all", false, "compile every article in the workspace")

	addCommonFlags(fs, &f.common)
	addEngineFlags(fs, &f.engine)
	addContainerFlags(fs, &f.container)

	fs.Usage = func() { printCompileUsage(errw) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseWatchFlags parses watch command flags and returns positional args.
func parseWatchFlags(args []string, errw io.Writer) (*watchFlags, []string, error) {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(errw)
	f := &watchFlags{}

	fs.StringVar(&f.interval, "interval", "", "poll interval (e.g., 1s, 500ms)")
	fs.StringVarP(&f.compile.workspace, "workspace", "w", "", "workspace directory holding article subdirectories")

	addCommonFlags(fs, &f.compile.common)
	addEngineFlags(fs, &f.compile.engine)
	addContainerFlags(fs, &f.compile.container)

	fs.Usage = func() { printWatchUsage(errw) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseBuildFlags parses build command flags.
func parseBuildFlags(args []string, errw io.Writer) (*buildFlags, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(errw)
	f := &buildFlags{}

	fs.StringVarP(&f.tag, "tag", "t", "", "image tag (default from config)")
	fs.StringVar(&f.dockerfile, "dockerfile", "", "build from this Dockerfile instead of the embedded one")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printBuildUsage(errw) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// parseNewFlags parses new command flags and returns positional args.
func parseNewFlags(args []string, errw io.Writer) (*newFlags, []string, error) {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	fs.SetOutput(errw)
	f := &newFlags{}

	fs.StringVarP(&f.workspace, "workspace", "w", "", "workspace directory holding article subdirectories")
	fs.StringVar(&f.template, "template", "article", "article template name")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printNewUsage(errw) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseCleanFlags parses clean command flags and returns positional args.
func parseCleanFlags(args []string, errw io.Writer) (*cleanFlags, []string, error) {
	fs := flag.NewFlagSet("clean", flag.ContinueOnError)
	fs.SetOutput(errw)
	f := &cleanFlags{}

	fs.StringVarP(&f.workspace, "workspace", "w", "", "workspace directory holding article subdirectories")
	fs.BoolVar(&f.all, "all", false, "clean every article in the workspace")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printCleanUsage(errw) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
