package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags *flag.FlagSet // nil for commands without flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the real FlagSets, keeping a single source of truth.
func getCommands() []commandDef {
	compileFS := flag.NewFlagSet("compile", flag.ContinueOnError)
	{
		f := &compileFlags{}
		compileFS.StringVarP(&f.workspace, "workspace", "w", "", "")
		compileFS.IntVarP(&f.workers, "workers", "j", 0, "")
		compileFS.BoolVar(&f.all, "all", false, "")
		addCommonFlags(compileFS, &f.common)
		addEngineFlags(compileFS, &f.engine)
		addContainerFlags(compileFS, &f.container)
	}

	watchFS := flag.NewFlagSet("watch", flag.ContinueOnError)
	{
		f := &watchFlags{}
		watchFS.StringVar(&f.interval, "interval", "", "")
		watchFS.StringVarP(&f.compile.workspace, "workspace", "w", "", "")
		addCommonFlags(watchFS, &f.compile.common)
		addEngineFlags(watchFS, &f.compile.engine)
		addContainerFlags(watchFS, &f.compile.container)
	}

	buildFS := flag.NewFlagSet("build", flag.ContinueOnError)
	{
		f := &buildFlags{}
		buildFS.StringVarP(&f.tag, "tag", "t", "", "")
		buildFS.StringVar(&f.dockerfile, "dockerfile", "", "")
		addCommonFlags(buildFS, &f.common)
	}

	newFS := flag.NewFlagSet("new", flag.ContinueOnError)
	{
		f := &newFlags{}
		newFS.StringVarP(&f.workspace, "workspace", "w", "", "")
		newFS.StringVar(&f.template, "template", "", "")
		addCommonFlags(newFS, &f.common)
	}

	cleanFS := flag.NewFlagSet("clean", flag.ContinueOnError)
	{
		f := &cleanFlags{}
		cleanFS.StringVarP(&f.workspace, "workspace", "w", "", "")
		cleanFS.BoolVar(&f.all, "all", false, "")
		addCommonFlags(cleanFS, &f.common)
	}

	return []commandDef{
		{Name: "compile", Desc: "Compile an article directory to PDF", Flags: compileFS},
		{Name: "watch", Desc: "Recompile an article when sources change", Flags: watchFS},
		{Name: "build", Desc: "Build the TeX Live container image", Flags: buildFS},
		{Name: "new", Desc: "Scaffold a new article directory", Flags: newFS},
		{Name: "clean", Desc: "Remove auxiliary files", Flags: cleanFS},
		{Name: "doctor", Desc: "Check runtime and engine availability"},
		{Name: "version", Desc: "Show version information"},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// flagNames collects the long flag names (with leading dashes) of a FlagSet.
func flagNames(fs *flag.FlagSet) []string {
	if fs == nil {
		return nil
	}
	var names []string
	fs.VisitAll(func(f *flag.Flag) {
		names = append(names, "--"+f.Name)
		if f.Shorthand != "" {
			names = append(names, "-"+f.Shorthand)
		}
	})
	sort.Strings(names)
	return names
}

// GenerateCompletion writes a shell completion script to w.
// Returns an error if the shell is unsupported or the write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// generateBash writes a bash completion function.
func generateBash(w io.Writer) error {
	cmds := getCommands()

	var names []string
	for _, c := range cmds {
		names = append(names, c.Name)
	}

	fmt.Fprintln(w, "# bash completion for tex2pdf")
	fmt.Fprintln(w, "_tex2pdf() {")
	fmt.Fprintln(w, "  local cur prev words cword")
	fmt.Fprintln(w, "  COMPREPLY=()")
	fmt.Fprintln(w, `  cur="${COMP_WORDS[COMP_CWORD]}"`)
	fmt.Fprintln(w, `  cmd="${COMP_WORDS[1]}"`)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  if [[ $COMP_CWORD -eq 1 ]]; then")
	fmt.Fprintf(w, "    COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(names, " "))
	fmt.Fprintln(w, "    return 0")
	fmt.Fprintln(w, "  fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, `  case "$cmd" in`)
	for _, c := range cmds {
		if c.Flags == nil {
			continue
		}
		fmt.Fprintf(w, "    %s)\n", c.Name)
		fmt.Fprintf(w, "      COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(flagNames(c.Flags), " "))
		fmt.Fprintln(w, "      ;;")
	}
	fmt.Fprintln(w, "    completion)")
	fmt.Fprintln(w, `      COMPREPLY=( $(compgen -W "bash zsh fish" -- "$cur") )`)
	fmt.Fprintln(w, "      ;;")
	fmt.Fprintln(w, "  esac")
	fmt.Fprintln(w, "  return 0")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w, "complete -F _tex2pdf tex2pdf")
	return nil
}

// generateZsh writes a zsh completion function.
func generateZsh(w io.Writer) error {
	cmds := getCommands()

	fmt.Fprintln(w, "#compdef tex2pdf")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "_tex2pdf() {")
	fmt.Fprintln(w, "  local -a commands")
	fmt.Fprintln(w, "  commands=(")
	for _, c := range cmds {
		fmt.Fprintf(w, "    '%s:%s'\n", c.Name, strings.ReplaceAll(c.Desc, "'", ""))
	}
	fmt.Fprintln(w, "  )")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  if (( CURRENT == 2 )); then")
	fmt.Fprintln(w, `    _describe 'command' commands`)
	fmt.Fprintln(w, "    return")
	fmt.Fprintln(w, "  fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, `  case "$words[2]" in`)
	for _, c := range cmds {
		if c.Flags == nil {
			continue
		}
		fmt.Fprintf(w, "    %s)\n", c.Name)
		fmt.Fprintf(w, "      compadd -- %s\n", strings.Join(flagNames(c.Flags), " "))
		fmt.Fprintln(w, "      ;;")
	}
	fmt.Fprintln(w, "    completion)")
	fmt.Fprintln(w, "      compadd -- bash zsh fish")
	fmt.Fprintln(w, "      ;;")
	fmt.Fprintln(w, "  esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w)
	fmt.Fprintln(w, `_tex2pdf "$@"`)
	return nil
}

// generateFish writes fish completion directives.
func generateFish(w io.Writer) error {
	cmds := getCommands()

	fmt.Fprintln(w, "# fish completion for tex2pdf")
	for _, c := range cmds {
		fmt.Fprintf(w, "complete -c tex2pdf -f -n '__fish_use_subcommand' -a %s -d '%s'\n",
			c.Name, strings.ReplaceAll(c.Desc, "'", ""))
	}
	for _, c := range cmds {
		if c.Flags == nil {
			continue
		}
		var err error
		c.Flags.VisitAll(func(f *flag.Flag) {
			if err != nil {
				return
			}
			if f.Shorthand != "" {
				_, err = fmt.Fprintf(w, "complete -c tex2pdf -n '__fish_seen_subcommand_from %s' -l %s -s %s\n",
					c.Name, f.Name, f.Shorthand)
			} else {
				_, err = fmt.Fprintf(w, "complete -c tex2pdf -n '__fish_seen_subcommand_from %s' -l %s\n",
					c.Name, f.Name)
			}
		})
		if err != nil {
			return err
		}
	}
	fmt.Fprintln(w, "complete -c tex2pdf -f -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'")
	return nil
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tex2pdf completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash    Bash completion script")
	fmt.Fprintln(w, "  zsh     Zsh completion script")
	fmt.Fprintln(w, "  fish    Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(tex2pdf completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(tex2pdf completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    tex2pdf completion fish > ~/.config/fish/completions/tex2pdf.fish")
}
