package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// commands lists all recognized subcommands.
var commands = []string{
	"compile", "watch", "build", "new", "clean",
	"doctor", "version", "help", "completion",
}

// isCommand reports whether name is a recognized subcommand.
func isCommand(name string) bool {
	for _, c := range commands {
		if name == c {
			return true
		}
	}
	return false
}

func main() {
	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS env,
	// in which case Go runtime defaults apply and the program continues.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	ctx, stop := notifyContext(context.Background())
	defer stop()

	os.Exit(runMain(ctx, os.Args, DefaultEnv()))
}

// runMain dispatches to the subcommand and returns the process exit code.
// Factored out of main for testability.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd := args[1]
	rest := args[2:]

	switch cmd {
	case "-h", "--help":
		printUsage(env.Stdout)
		return ExitSuccess
	case "--version":
		fmt.Fprintf(env.Stdout, "tex2pdf %s\n", Version)
		return ExitSuccess
	}

	// "tex2pdf <article>" compiles directly, matching the common case.
	if !isCommand(cmd) {
		if looksLikeFlag(cmd) {
			fmt.Fprintf(env.Stderr, "Unknown flag: %s\n", cmd)
			printUsage(env.Stderr)
			return ExitUsage
		}
		cmd, rest = "compile", args[1:]
	}

	switch cmd {
	case "compile":
		return runCompileCmd(ctx, rest, env)
	case "watch":
		return runWatchCmd(ctx, rest, env)
	case "build":
		return runBuildCmd(ctx, rest, env)
	case "new":
		return runNewCmd(rest, env)
	case "clean":
		return runCleanCmd(rest, env)
	case "doctor":
		return runDoctorCmd(ctx, rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "tex2pdf %s\n", Version)
		return ExitSuccess
	case "help":
		runHelp(rest, env)
		return ExitSuccess
	case "completion":
		if err := runCompletion(rest, env); err != nil {
			fmt.Fprintln(env.Stderr, err)
			return ExitUsage
		}
		return ExitSuccess
	default:
		printUsage(env.Stderr)
		return ExitUsage
	}
}

func looksLikeFlag(s string) bool {
	return len(s) > 0 && s[0] == '-' && s != "-"
}
