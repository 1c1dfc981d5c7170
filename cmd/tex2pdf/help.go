package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tex2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  compile     Compile an article directory to PDF (default)")
	fmt.Fprintln(w, "  watch       Recompile an article whenever its sources change")
	fmt.Fprintln(w, "  build       Build the TeX Live container image")
	fmt.Fprintln(w, "  new         Scaffold a new article directory")
	fmt.Fprintln(w, "  clean       Remove auxiliary files from article directories")
	fmt.Fprintln(w, "  doctor      Check runtime, image, and engine availability")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'tex2pdf help <command>' for details on a specific command.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "'tex2pdf <article>' is shorthand for 'tex2pdf compile <article>'.")
}

// printCompileUsage prints usage for the compile command.
func printCompileUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tex2pdf compile [article] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compile an article directory to PDF. By default the compile runs inside")
	fmt.Fprintln(w, "a container with the workspace bind-mounted; --local uses the host TeX.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  article    Article subdirectory name (optional if config has article)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input:")
	fmt.Fprintln(w, "  -w, --workspace <dir>     Workspace holding article subdirectories")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --all                 Compile every article in the workspace")
	fmt.Fprintln(w, "  -j, --workers <n>         Parallel workers for --all (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Engine:")
	fmt.Fprintln(w, "  -e, --engine <s>          TeX engine: pdflatex, xelatex, lualatex")
	fmt.Fprintln(w, "  -n, --passes <n>          Engine passes per compile (1-5)")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Per-pass timeout (e.g., 60s, 2m)")
	fmt.Fprintln(w, "      --keep-aux            Keep auxiliary files after success")
	fmt.Fprintln(w, "      --clean-first         Remove auxiliary files before compiling")
	fmt.Fprintln(w, "      --shell-escape        Pass -shell-escape to the engine")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Container:")
	fmt.Fprintln(w, "      --local               Compile on the host instead of in a container")
	fmt.Fprintln(w, "      --runtime <s>         Container runtime: docker, podman (default auto)")
	fmt.Fprintln(w, "      --image <s>           Container image for compilation")
	fmt.Fprintln(w, "      --network <s>         Container network mode")
	fmt.Fprintln(w, "      --dns <ip>            Container DNS resolvers (repeatable)")
	fmt.Fprintln(w, "      --mount <h:c>         Extra host:container bind mounts (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show engine output and timing")
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tex2pdf watch [article] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watch an article directory and recompile whenever a source file changes.")
	fmt.Fprintln(w, "Accepts the same engine and container flags as compile, plus:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --interval <dur>      Poll interval (default 1s)")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tex2pdf build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build the TeX Live container image from the embedded Dockerfile.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -t, --tag <s>             Image tag (default from config)")
	fmt.Fprintln(w, "      --dockerfile <path>   Build from this Dockerfile instead of the embedded one")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Suppress build output")
}

// printNewUsage prints usage for the new command.
func printNewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tex2pdf new <article> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Scaffold a new article directory with main.tex, bib/refs.bib, and img/.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -w, --workspace <dir>     Workspace holding article subdirectories")
	fmt.Fprintln(w, "      --template <s>        Article template name (default \"article\")")
}

// printCleanUsage prints usage for the clean command.
func printCleanUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tex2pdf clean [article] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Remove auxiliary files (aux, log, toc, ...) from article directories.")
	fmt.Fprintln(w, "The PDF and sources are never touched.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -w, --workspace <dir>     Workspace holding article subdirectories")
	fmt.Fprintln(w, "      --all                 Clean every article in the workspace")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tex2pdf doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check container runtime, image, TeX engines, and workspace availability.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "compile":
		printCompileUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "build":
		printBuildUsage(env.Stdout)
	case "new":
		printNewUsage(env.Stdout)
	case "clean":
		printCleanUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: tex2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: tex2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
