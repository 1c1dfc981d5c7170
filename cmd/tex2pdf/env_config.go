package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/jcastellanos/go-tex2pdf/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // TEX2PDF_CONFIG: config file path
	Workspace  string        // TEX2PDF_WORKSPACE: workspace directory
	Article    string        // TEX2PDF_ARTICLE: default article
	Engine     string        // TEX2PDF_ENGINE: pdflatex, xelatex, lualatex
	Timeout    time.Duration // TEX2PDF_TIMEOUT: per-pass timeout
	Passes     int           // TEX2PDF_PASSES: engine passes
	Image      string        // TEX2PDF_IMAGE: container image
	Network    string        // TEX2PDF_NETWORK: container network mode
	Runtime    string        // TEX2PDF_RUNTIME: docker or podman
	Workers    int           // TEX2PDF_WORKERS: parallel workers for --all
}

// knownEnvVars lists valid TEX2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"TEX2PDF_CONFIG":    true,
	"TEX2PDF_WORKSPACE": true,
	"TEX2PDF_ARTICLE":   true,
	"TEX2PDF_ENGINE":    true,
	"TEX2PDF_TIMEOUT":   true,
	"TEX2PDF_PASSES":    true,
	"TEX2PDF_IMAGE":     true,
	"TEX2PDF_NETWORK":   true,
	"TEX2PDF_RUNTIME":   true,
	"TEX2PDF_WORKERS":   true,
	"TEX2PDF_ASSETS":    true, // custom asset directory, read in DefaultEnv
	"TEX2PDF_CONTAINER": true, // in-container marker, read by doctor
}

// loadDotEnv loads a .env file from the working directory if present.
// Real environment variables always win over .env values.
func loadDotEnv() {
	// Error ignored: a missing .env file is the normal case.
	_ = godotenv.Load()
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized TEX2PDF_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("TEX2PDF_CONFIG"),
		Workspace:  os.Getenv("TEX2PDF_WORKSPACE"),
		Article:    os.Getenv("TEX2PDF_ARTICLE"),
		Engine:     os.Getenv("TEX2PDF_ENGINE"),
		Image:      os.Getenv("TEX2PDF_IMAGE"),
		Network:    os.Getenv("TEX2PDF_NETWORK"),
		Runtime:    os.Getenv("TEX2PDF_RUNTIME"),
	}

	if timeout := os.Getenv("TEX2PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if passes := os.Getenv("TEX2PDF_PASSES"); passes != "" {
		if n, err := strconv.Atoi(passes); err == nil && n > 0 {
			cfg.Passes = n
		}
	}
	if workers := os.Getenv("TEX2PDF_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil && n > 0 {
			cfg.Workers = n
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized TEX2PDF_* variables.
// Helps catch typos like TEX2PDF_ENGIN instead of TEX2PDF_ENGINE.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "TEX2PDF_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config, overriding
// file values. The precedence is: CLI flags > env vars > config file >
// defaults (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Workspace != "" {
		cfg.Workspace = env.Workspace
	}
	if env.Article != "" {
		cfg.Article = env.Article
	}
	if env.Engine != "" {
		cfg.Engine = env.Engine
	}
	if env.Timeout > 0 {
		cfg.Timeout = env.Timeout.String()
	}
	if env.Passes > 0 {
		cfg.Passes = env.Passes
	}
	if env.Image != "" {
		cfg.Container.Image = env.Image
	}
	if env.Network != "" {
		cfg.Container.Network = env.Network
	}
	if env.Runtime != "" {
		cfg.Container.Runtime = env.Runtime
	}
}
