package tex2pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// auxExtensions are the byproducts a TeX run leaves next to the root file.
// The list covers plain LaTeX, bibtex, beamer, and latexmk leftovers.
var auxExtensions = []string{
	".aux", ".log", ".out", ".toc", ".lof", ".lot",
	".bbl", ".blg", ".nav", ".snm", ".vrb",
	".fdb_latexmk", ".fls", ".synctex.gz",
}

// CleanAux removes auxiliary files from previous compilations of texPath.
// Returns the names of removed files. Missing files are not an error.
func CleanAux(texPath string) ([]string, error) {
	base := strings.TrimSuffix(texPath, filepath.Ext(texPath))

	var removed []string
	for _, ext := range auxExtensions {
		path := base + ext
		err := os.Remove(path)
		if err == nil {
			removed = append(removed, filepath.Base(path))
			continue
		}
		if !os.IsNotExist(err) {
			return removed, fmt.Errorf("removing %s: %w", path, err)
		}
	}
	return removed, nil
}
