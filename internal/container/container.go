// Package container drives a container runtime (docker or podman) through
// its CLI. The compile flow only needs four operations: detect a runtime,
// check an image, build an image, and run a one-shot container with a
// workspace bind mount. Shelling out to the runtime binary keeps the tool
// working identically against docker and podman without daemon API clients.
package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Sentinel errors for container operations.
var (
	ErrRuntimeNotFound = errors.New("no container runtime found")
	ErrImageNotFound   = errors.New("image not found")
	ErrRunFailed       = errors.New("container run failed")
	ErrBuildFailed     = errors.New("image build failed")
)

// runtimeCandidates are probed in order by Detect.
var runtimeCandidates = []string{"docker", "podman"}

// Mount is a host-to-container bind mount.
type Mount struct {
	Host      string
	Container string
}

// RunSpec describes a one-shot container run.
type RunSpec struct {
	Image   string
	Mounts  []Mount
	Workdir string
	Network string
	DNS     []string
	Env     []string  // KEY=VALUE pairs
	Args    []string  // command and arguments after the image
	Stdout  io.Writer // nil discards
	Stderr  io.Writer // nil discards
}

// BuildSpec describes an image build.
type BuildSpec struct {
	ContextDir string
	Dockerfile string // empty = <ContextDir>/Dockerfile
	Tag        string
	Output     io.Writer // build output stream, nil discards
}

// Runtime abstracts the container runtime for testability.
type Runtime interface {
	Name() string
	Version(ctx context.Context) (string, error)
	ImageExists(ctx context.Context, image string) error
	Run(ctx context.Context, spec RunSpec) error
	Build(ctx context.Context, spec BuildSpec) error
}

// CommandRunner abstracts command execution to enable testing without real
// subprocesses.
type CommandRunner interface {
	// Run executes name with args, streaming output to stdout/stderr.
	Run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error
	// Output executes name with args and returns combined trimmed stdout.
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	return strings.TrimSpace(string(out)), err
}

// CLIRuntime is a Runtime backed by the docker or podman binary.
type CLIRuntime struct {
	binary string
	runner CommandRunner
}

// New creates a CLIRuntime for the given binary ("docker" or "podman").
func New(binary string, runner CommandRunner) *CLIRuntime {
	if runner == nil {
		runner = &ExecRunner{}
	}
	return &CLIRuntime{binary: binary, runner: runner}
}

// Detect returns a CLIRuntime for the first runtime binary found on PATH,
// probing docker then podman.
func Detect() (*CLIRuntime, error) {
	for _, name := range runtimeCandidates {
		if _, err := exec.LookPath(name); err == nil {
			return New(name, nil), nil
		}
	}
	return nil, fmt.Errorf("%w: tried %s", ErrRuntimeNotFound, strings.Join(runtimeCandidates, ", "))
}

func (c *CLIRuntime) Name() string { return c.binary }

// Version returns the runtime client version string.
func (c *CLIRuntime) Version(ctx context.Context) (string, error) {
	out, err := c.runner.Output(ctx, c.binary, "--version")
	if err != nil {
		return "", fmt.Errorf("querying %s version: %w", c.binary, err)
	}
	return out, nil
}

// ImageExists checks that the image is present locally.
func (c *CLIRuntime) ImageExists(ctx context.Context, image string) error {
	if _, err := c.runner.Output(ctx, c.binary, "image", "inspect", image); err != nil {
		return fmt.Errorf("%w: %s", ErrImageNotFound, image)
	}
	return nil
}

// RunError reports a failed container run. Code is the container's exit
// status when the runtime surfaced one, -1 otherwise (signal, runtime
// startup failure). errors.Is(err, ErrRunFailed) matches it.
type RunError struct {
	Cmd  string
	Code int
	Err  error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrRunFailed, e.Cmd, e.Err)
}

func (e *RunError) Unwrap() []error { return []error{ErrRunFailed, e.Err} }

// ExitStatus returns the container exit status carried by err, or -1 when
// err holds no RunError.
func ExitStatus(err error) int {
	var runErr *RunError
	if errors.As(err, &runErr) {
		return runErr.Code
	}
	return -1
}

// Run executes a one-shot container per spec. The container is always
// removed on exit (--rm); state lives only in the bind-mounted workspace.
func (c *CLIRuntime) Run(ctx context.Context, spec RunSpec) error {
	args := RunArgs(spec)
	if err := c.runner.Run(ctx, out(spec.Stdout), out(spec.Stderr), c.binary, args...); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return &RunError{Cmd: c.binary + " " + strings.Join(args, " "), Code: code, Err: err}
	}
	return nil
}

// Build builds an image per spec, streaming output to spec.Output.
func (c *CLIRuntime) Build(ctx context.Context, spec BuildSpec) error {
	args := BuildArgs(spec)
	w := out(spec.Output)
	if err := c.runner.Run(ctx, w, w, c.binary, args...); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBuildFailed, spec.Tag, err)
	}
	return nil
}

// RunArgs constructs the CLI arguments for a run. Exposed so tests can
// assert the constructed command (mounts, network, DNS, trailing args)
// without a runtime installed.
func RunArgs(spec RunSpec) []string {
	args := []string{"run", "--rm"}
	for _, m := range spec.Mounts {
		args = append(args, "-v", m.Host+":"+m.Container)
	}
	if spec.Workdir != "" {
		args = append(args, "-w", spec.Workdir)
	}
	if spec.Network != "" {
		args = append(args, "--network", spec.Network)
	}
	for _, dns := range spec.DNS {
		args = append(args, "--dns", dns)
	}
	for _, e := range spec.Env {
		args = append(args, "-e", e)
	}
	args = append(args, spec.Image)
	args = append(args, spec.Args...)
	return args
}

// BuildArgs constructs the CLI arguments for an image build.
func BuildArgs(spec BuildSpec) []string {
	args := []string{"build", "-t", spec.Tag}
	if spec.Dockerfile != "" {
		args = append(args, "-f", spec.Dockerfile)
	}
	args = append(args, spec.ContextDir)
	return args
}

// out substitutes io.Discard for nil writers.
func out(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
