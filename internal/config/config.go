// Package config loads and validates tex2pdf YAML configuration.
//
// Configuration precedence is handled by the CLI layer: flags > environment
// variables > config file > defaults. This package only knows about the
// file, its schema, and its validation rules.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jcastellanos/go-tex2pdf/internal/fileutil"
	"github.com/jcastellanos/go-tex2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidEngine   = errors.New("invalid engine")
	ErrInvalidPasses   = errors.New("invalid passes")
	ErrInvalidTimeout  = errors.New("invalid timeout")
	ErrInvalidInterval = errors.New("invalid watch interval")
	ErrInvalidMount    = errors.New("invalid mount")
)

// Engine names accepted by the `engine` field.
const (
	EnginePDFLaTeX = "pdflatex"
	EngineXeLaTeX  = "xelatex"
	EngineLuaLaTeX = "lualatex"
)

// Pass bounds. One pass resolves nothing, five resolves everything TeX can.
const (
	MinPasses = 1
	MaxPasses = 5
)

// Defaults applied by DefaultConfig.
const (
	DefaultEngine        = EnginePDFLaTeX
	DefaultPasses        = 2
	DefaultTimeout       = 60 * time.Second
	DefaultImage         = "tex2pdf/texlive:latest"
	DefaultNetwork       = "bridge"
	DefaultWatchInterval = time.Second
)

// DefaultDNS are the resolvers passed to container runs. Public resolvers
// keep package downloads working regardless of the host's DNS setup.
var DefaultDNS = []string{"8.8.8.8", "8.8.4.4"}

// DefaultWatchExtensions are the file extensions watch mode monitors.
var DefaultWatchExtensions = []string{".tex", ".bib", ".sty", ".cls"}

// Config holds all configuration for article compilation.
type Config struct {
	Workspace   string          `yaml:"workspace"`   // directory holding one subdirectory per article
	Article     string          `yaml:"article"`     // default article when none is given
	Engine      string          `yaml:"engine"`      // pdflatex, xelatex, lualatex
	Passes      int             `yaml:"passes"`      // engine passes per compile (1-5)
	Timeout     string          `yaml:"timeout"`     // per-pass timeout, Go duration string
	KeepAux     bool            `yaml:"keepAux"`     // keep auxiliary files after success
	CleanFirst  bool            `yaml:"cleanFirst"`  // remove auxiliary files before compiling
	ShellEscape bool            `yaml:"shellEscape"` // pass -shell-escape to the engine
	Container   ContainerConfig `yaml:"container"`
	Watch       WatchConfig     `yaml:"watch"`
}

// ContainerConfig defines how the containerized compile runs.
type ContainerConfig struct {
	Disabled bool     `yaml:"disabled"` // true = always compile on the host
	Runtime  string   `yaml:"runtime"`  // docker, podman, or empty for auto-detect
	Image    string   `yaml:"image"`
	Network  string   `yaml:"network"`
	DNS      []string `yaml:"dns"`
	Mounts   []string `yaml:"mounts"` // extra host:container bind mounts
}

// WatchConfig defines watch mode behavior.
type WatchConfig struct {
	Interval   string   `yaml:"interval"`   // poll interval, Go duration string
	Extensions []string `yaml:"extensions"` // file extensions that trigger a recompile
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Workspace: ".",
		Engine:    DefaultEngine,
		Passes:    DefaultPasses,
		Timeout:   DefaultTimeout.String(),
		Container: ContainerConfig{
			Image:   DefaultImage,
			Network: DefaultNetwork,
			DNS:     append([]string(nil), DefaultDNS...),
		},
		Watch: WatchConfig{
			Interval:   DefaultWatchInterval.String(),
			Extensions: append([]string(nil), DefaultWatchExtensions...),
		},
	}
}

// TimeoutDuration returns the parsed per-pass timeout.
// Validate guarantees the field parses; zero falls back to the default.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return DefaultTimeout
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

// WatchInterval returns the parsed watch poll interval.
func (c *Config) WatchInterval() time.Duration {
	if c.Watch.Interval == "" {
		return DefaultWatchInterval
	}
	d, err := time.ParseDuration(c.Watch.Interval)
	if err != nil || d <= 0 {
		return DefaultWatchInterval
	}
	return d
}

// Validate checks field values and ranges. Called automatically by
// LoadConfig, but available for consumers who construct Config manually.
func (c *Config) Validate() error {
	if c.Engine != "" {
		switch strings.ToLower(c.Engine) {
		case EnginePDFLaTeX, EngineXeLaTeX, EngineLuaLaTeX:
		default:
			return fmt.Errorf("%w: %q (must be pdflatex, xelatex, or lualatex)", ErrInvalidEngine, c.Engine)
		}
	}

	if c.Passes != 0 && (c.Passes < MinPasses || c.Passes > MaxPasses) {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidPasses, c.Passes, MinPasses, MaxPasses)
	}

	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, c.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, c.Timeout)
		}
	}

	if c.Watch.Interval != "" {
		d, err := time.ParseDuration(c.Watch.Interval)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidInterval, c.Watch.Interval, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: %q (must be positive)", ErrInvalidInterval, c.Watch.Interval)
		}
	}

	if c.Container.Runtime != "" {
		switch c.Container.Runtime {
		case "docker", "podman":
		default:
			return fmt.Errorf("container.runtime: invalid value %q (must be docker or podman)", c.Container.Runtime)
		}
	}

	for i, m := range c.Container.Mounts {
		if strings.Count(m, ":") != 1 || strings.HasPrefix(m, ":") || strings.HasSuffix(m, ":") {
			return fmt.Errorf("%w: container.mounts[%d]: %q (must be host:container)", ErrInvalidMount, i, m)
		}
	}

	for i, ext := range c.Watch.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("watch.extensions[%d]: %q must start with a dot", i, ext)
		}
	}

	return nil
}

// Merge overlays defaults for any zero-valued field so a sparse config file
// behaves like DefaultConfig with overrides.
func (c *Config) Merge(defaults *Config) {
	if c.Workspace == "" {
		c.Workspace = defaults.Workspace
	}
	if c.Engine == "" {
		c.Engine = defaults.Engine
	}
	if c.Passes == 0 {
		c.Passes = defaults.Passes
	}
	if c.Timeout == "" {
		c.Timeout = defaults.Timeout
	}
	if c.Container.Image == "" {
		c.Container.Image = defaults.Container.Image
	}
	if c.Container.Network == "" {
		c.Container.Network = defaults.Container.Network
	}
	if len(c.Container.DNS) == 0 {
		c.Container.DNS = append([]string(nil), defaults.Container.DNS...)
	}
	if c.Watch.Interval == "" {
		c.Watch.Interval = defaults.Watch.Interval
	}
	if len(c.Watch.Extensions) == 0 {
		c.Watch.Extensions = append([]string(nil), defaults.Watch.Extensions...)
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	cfg.Merge(DefaultConfig())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/tex2pdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "tex2pdf", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

