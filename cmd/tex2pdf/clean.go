package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tex2pdf "github.com/jcastellanos/go-tex2pdf"
	"github.com/jcastellanos/go-tex2pdf/internal/fileutil"
)

// runCleanCmd removes auxiliary files from article directories and returns
// an exit code.
func runCleanCmd(args []string, env *Environment) int {
	flags, positional, err := parseCleanFlags(args, env.Stderr)
	if err != nil {
		return ExitUsage
	}

	cfg, err := resolveConfig(&flags.common, env)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	if flags.workspace != "" {
		cfg.Workspace = flags.workspace
	}

	articles, err := resolveArticles(positional, flags.all, cfg)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	code := ExitSuccess
	for _, article := range articles {
		removed, err := cleanArticle(filepath.Join(cfg.Workspace, article))
		if err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", article, err)
			code = exitCodeFor(err)
			continue
		}
		if flags.common.quiet {
			continue
		}
		if len(removed) == 0 {
			fmt.Fprintf(env.Stdout, "%s: already clean\n", article)
		} else {
			fmt.Fprintf(env.Stdout, "%s: removed %s\n", article, strings.Join(removed, ", "))
		}
	}
	return code
}

// cleanArticle removes auxiliary files for the article's tex root.
func cleanArticle(dir string) ([]string, error) {
	root, err := fileutil.FindTexRoot(dir)
	if err != nil {
		if errors.Is(err, fileutil.ErrNoTexFile) {
			return nil, fmt.Errorf("%w: %s", tex2pdf.ErrNoTexFile, dir)
		}
		return nil, err
	}
	return tex2pdf.CleanAux(root.Path)
}
