// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/jcastellanos/go-tex2pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForRuntimeMissing returns hints when no container runtime binary is found.
func ForRuntimeMissing() string {
	hint := "install docker or podman, or run with --local against a host TeX installation"
	if IsInContainer() {
		// Nested container runs are almost never intended.
		hint = "already inside a container; use --local"
	}
	return format(hint)
}

// ForImageMissing returns hints when the configured image is not present locally.
func ForImageMissing(image string) string {
	return format("run 'tex2pdf build' to build " + image + ", or pull it manually")
}

// ForEngineMissing returns hints when the TeX engine binary is absent.
func ForEngineMissing(engine string) string {
	return format(engine + " not on PATH; install TeX Live or drop --local to compile in a container")
}

// ForTimeout returns a hint about increasing timeout for slow documents.
func ForTimeout() string {
	return format("large documents or TikZ-heavy sources may need --timeout 120s or more")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/tex2pdf/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/tex2pdf") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForNoTexFile returns hints when an article directory has no .tex file.
func ForNoTexFile(dir string) string {
	return format("expected " + dir + "/main.tex; run 'tex2pdf new' to scaffold an article")
}

// ForWorkspace returns hints when the workspace directory is missing or empty.
func ForWorkspace(workspace string) string {
	return format("set workspace in config, TEX2PDF_WORKSPACE, or create " + workspace)
}

// ForCompileFailure returns hints for failed LaTeX runs.
func ForCompileFailure(logPath string) string {
	hints := []string{"full log kept at " + logPath}
	if os.Getenv("CI") != "" {
		hints = append(hints, "use --verbose in CI to see the error excerpt")
	}
	return formatHints(hints)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
