package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jcastellanos/go-tex2pdf/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// runNewCmd scaffolds a new article directory and returns an exit code.
func runNewCmd(args []string, env *Environment) int {
	flags, positional, err := parseNewFlags(args, env.Stderr)
	if err != nil {
		return ExitUsage
	}
	if len(positional) != 1 {
		printNewUsage(env.Stderr)
		return ExitUsage
	}
	article := positional[0]

	cfg, err := resolveConfig(&flags.common, env)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	if flags.workspace != "" {
		cfg.Workspace = flags.workspace
	}

	dir := filepath.Join(cfg.Workspace, article)
	if err := scaffoldArticle(dir, flags.template, env); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", dir)
		fmt.Fprintf(env.Stdout, "Compile it with: tex2pdf %s\n", article)
	}
	return ExitSuccess
}

// scaffoldArticle creates the article directory from the named template:
// main.tex, bib/refs.bib, and an empty img/ directory.
func scaffoldArticle(dir, template string, env *Environment) error {
	if fileutil.DirExists(dir) {
		return fmt.Errorf("article directory already exists: %s", dir)
	}

	tmpl, err := env.Assets.Template(template)
	if err != nil {
		return fmt.Errorf("loading template %q: %w", template, err)
	}

	for _, sub := range []string{"", "bib", "img"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), dirPermissions); err != nil {
			return fmt.Errorf("creating article directory: %w", err)
		}
	}

	if err := os.WriteFile(filepath.Join(dir, fileutil.DefaultTexRoot), []byte(tmpl.MainTex), filePermissions); err != nil {
		return fmt.Errorf("writing main.tex: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bib", "refs.bib"), []byte(tmpl.RefsBib), filePermissions); err != nil {
		return fmt.Errorf("writing refs.bib: %w", err)
	}
	return nil
}
