package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/jcastellanos/go-tex2pdf/internal/config"
	"github.com/jcastellanos/go-tex2pdf/internal/container"
	"github.com/jcastellanos/go-tex2pdf/internal/fileutil"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string       `json:"status"` // "ready", "warnings", "errors"
	Runtime   runtimeInfo  `json:"runtime"`
	Engines   []engineInfo `json:"engines"`
	Workspace spaceInfo    `json:"workspace"`
	Env       envInfo      `json:"environment"`
	System    systemInfo   `json:"system"`
	Warnings  []string     `json:"warnings,omitempty"`
	Errors    []string     `json:"errors,omitempty"`
}

// runtimeInfo holds container runtime detection results.
type runtimeInfo struct {
	Found      bool   `json:"found"`
	Name       string `json:"name,omitempty"`
	Version    string `json:"version,omitempty"`
	Image      string `json:"image"`
	ImageFound bool   `json:"image_found"`
}

// engineInfo holds TeX engine detection results.
type engineInfo struct {
	Name  string `json:"name"`
	Found bool   `json:"found"`
	Path  string `json:"path,omitempty"`
}

// spaceInfo holds workspace check results.
type spaceInfo struct {
	Path     string `json:"path"`
	Exists   bool   `json:"exists"`
	Articles int    `json:"articles"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	jsonOutput := false
	configRef := ""
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--json":
			jsonOutput = true
		case "--config", "-c":
			if i+1 < len(args) {
				i++
				configRef = args[i]
			}
		}
	}

	cfg := config.DefaultConfig()
	if configRef != "" {
		loaded, err := config.LoadConfig(configRef)
		if err != nil {
			fmt.Fprintln(env.Stderr, err)
			return exitCodeFor(err)
		}
		cfg = loaded
	}

	result := runDoctor(ctx, cfg)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, cfg *config.Config) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	checkRuntime(ctx, cfg, result)
	checkEngines(result)
	checkWorkspace(cfg, result)
	checkEnvironment(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkRuntime detects the container runtime and the compile image.
func checkRuntime(ctx context.Context, cfg *config.Config, result *doctorResult) {
	result.Runtime.Image = cfg.Container.Image

	rt, err := container.Detect()
	if err != nil {
		// Without a runtime, --local against a host TeX still works, so
		// this is a warning rather than an error.
		result.Warnings = append(result.Warnings,
			"no container runtime found (docker, podman); only --local compiles will work")
		return
	}

	result.Runtime.Found = true
	result.Runtime.Name = rt.Name()

	if version, err := rt.Version(ctx); err == nil {
		result.Runtime.Version = version
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("could not get %s version: %v", rt.Name(), err))
	}

	if err := rt.ImageExists(ctx, cfg.Container.Image); err == nil {
		result.Runtime.ImageFound = true
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("image %s not present; run 'tex2pdf build'", cfg.Container.Image))
	}
}

// checkEngines looks for TeX engines on the host PATH.
func checkEngines(result *doctorResult) {
	engines := []string{config.EnginePDFLaTeX, config.EngineXeLaTeX, config.EngineLuaLaTeX, "bibtex"}
	anyFound := false

	for _, name := range engines {
		info := engineInfo{Name: name}
		if path, err := exec.LookPath(name); err == nil {
			info.Found = true
			info.Path = path
			anyFound = true
		}
		result.Engines = append(result.Engines, info)
	}

	if !anyFound && !result.Runtime.Found {
		result.Errors = append(result.Errors,
			"no TeX engine on PATH and no container runtime; install TeX Live or docker/podman")
	}
}

// checkWorkspace verifies the workspace directory and counts articles.
func checkWorkspace(cfg *config.Config, result *doctorResult) {
	result.Workspace.Path = cfg.Workspace

	if !fileutil.DirExists(cfg.Workspace) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("workspace %s does not exist", cfg.Workspace))
		return
	}
	result.Workspace.Exists = true

	if articles, err := discoverArticles(cfg.Workspace); err == nil {
		result.Workspace.Articles = len(articles)
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if result.Env.Container && result.Runtime.Found {
		result.Warnings = append(result.Warnings,
			"running inside a container with a runtime available; nested runs are rarely intended, prefer --local")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
// dockerEnvPath is the marker file docker creates in every container.
// A var so tests can point the probe at a controlled path.
var dockerEnvPath = "/.dockerenv"

func isContainer() (bool, string) {
	if os.Getenv("TEX2PDF_CONTAINER") == "1" {
		return true, "TEX2PDF_CONTAINER=1"
	}
	if _, err := os.Stat(dockerEnvPath); err == nil {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies system requirements.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "tex2pdf-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "tex2pdf doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Container Runtime")
	if r.Runtime.Found {
		fmt.Fprintf(w, "  [OK] Found %s\n", r.Runtime.Name)
		if r.Runtime.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Runtime.Version)
		}
		if r.Runtime.ImageFound {
			fmt.Fprintf(w, "  [OK] Image: %s\n", r.Runtime.Image)
		} else {
			fmt.Fprintf(w, "  [WARN] Image missing: %s\n", r.Runtime.Image)
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "TeX Engines (host)")
	for _, e := range r.Engines {
		if e.Found {
			fmt.Fprintf(w, "  [OK] %s at %s\n", e.Name, e.Path)
		} else {
			fmt.Fprintf(w, "  [--] %s not on PATH\n", e.Name)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Workspace")
	if r.Workspace.Exists {
		fmt.Fprintf(w, "  [OK] %s (%d articles)\n", r.Workspace.Path, r.Workspace.Articles)
	} else {
		fmt.Fprintf(w, "  [WARN] %s does not exist\n", r.Workspace.Path)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to compile")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
