// Package fileutil provides file and path utility functions, including
// discovery of the TeX root file inside an article directory.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoTexFile is returned when an article directory contains no .tex file.
var ErrNoTexFile = errors.New("no .tex file found")

// DefaultTexRoot is the conventional name of the compilation root.
const DefaultTexRoot = "main.tex"

// TexRoot describes the resolved compilation root of an article directory.
type TexRoot struct {
	Path     string // absolute or dir-relative path to the .tex file
	Fallback bool   // true when main.tex was absent and another .tex was used
}

// FindTexRoot locates the TeX file to compile inside dir.
// main.tex wins when present; otherwise the lexicographically first *.tex
// file is used and Fallback is set so callers can warn about it.
func FindTexRoot(dir string) (TexRoot, error) {
	mainPath := filepath.Join(dir, DefaultTexRoot)
	if FileExists(mainPath) {
		return TexRoot{Path: mainPath}, nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.tex"))
	if err != nil {
		return TexRoot{}, fmt.Errorf("globbing %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return TexRoot{}, fmt.Errorf("%w: %s", ErrNoTexFile, dir)
	}

	sort.Strings(matches)
	return TexRoot{Path: matches[0], Fallback: true}, nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a
// name. A string containing path separators (/, \) is treated as a path.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
