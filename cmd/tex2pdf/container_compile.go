package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"

	tex2pdf "github.com/jcastellanos/go-tex2pdf"
	"github.com/jcastellanos/go-tex2pdf/internal/config"
	"github.com/jcastellanos/go-tex2pdf/internal/container"
	"github.com/jcastellanos/go-tex2pdf/internal/hints"
)

// containerWorkspace is where the host workspace is bind-mounted inside
// the compile container.
const containerWorkspace = "/workspace"

// containerCompiler compiles articles inside a one-shot container. The image
// ships this same binary as its entrypoint, so the container run is just the
// local compile path with the workspace mounted at a fixed location.
type containerCompiler struct {
	runtime container.Runtime
	cfg     *config.Config
	verbose bool
	quiet   bool
	env     *Environment

	imageOnce sync.Once
	imageErr  error
}

func (c *containerCompiler) Compile(ctx context.Context, article string) (*tex2pdf.Result, error) {
	c.imageOnce.Do(func() {
		if err := c.runtime.ImageExists(ctx, c.cfg.Container.Image); err != nil {
			c.imageErr = fmt.Errorf("%w%s", err, hints.ForImageMissing(c.cfg.Container.Image))
		}
	})
	if c.imageErr != nil {
		return nil, c.imageErr
	}

	hostWorkspace, err := filepath.Abs(c.cfg.Workspace)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace path: %w", err)
	}

	spec := container.RunSpec{
		Image:   c.cfg.Container.Image,
		Mounts:  c.mounts(hostWorkspace),
		Workdir: containerWorkspace,
		Network: c.cfg.Container.Network,
		DNS:     c.cfg.Container.DNS,
		Env:     []string{"TEX2PDF_CONTAINER=1"},
		Args:    c.compileArgs(article),
		Stdout:  c.env.Stdout,
		Stderr:  c.env.Stderr,
	}

	if err := c.runtime.Run(ctx, spec); err != nil {
		// The image entrypoint is this binary, so the container's exit
		// codes are ours. Map the compile-failure status back to the
		// sentinel so the host exits with it too.
		if container.ExitStatus(err) == ExitCompile {
			return nil, fmt.Errorf("%w: %s", tex2pdf.ErrCompileFailed, article)
		}
		return nil, err
	}
	return nil, nil
}

// mounts builds the bind mount list: the workspace plus any extras.
func (c *containerCompiler) mounts(hostWorkspace string) []container.Mount {
	mounts := []container.Mount{{Host: hostWorkspace, Container: containerWorkspace}}
	for _, m := range c.cfg.Container.Mounts {
		// Validated as host:container by config.Validate.
		host, cont, _ := splitMount(m)
		mounts = append(mounts, container.Mount{Host: host, Container: cont})
	}
	return mounts
}

// compileArgs builds the inner command line: the image entrypoint is this
// binary, so the container re-runs compile with --local against the mount.
func (c *containerCompiler) compileArgs(article string) []string {
	args := []string{"compile", "--local", "--workspace", containerWorkspace}

	if c.cfg.Engine != "" && c.cfg.Engine != config.DefaultEngine {
		args = append(args, "--engine", c.cfg.Engine)
	}
	if c.cfg.Passes != 0 && c.cfg.Passes != config.DefaultPasses {
		args = append(args, "--passes", strconv.Itoa(c.cfg.Passes))
	}
	if c.cfg.Timeout != "" && c.cfg.Timeout != config.DefaultTimeout.String() {
		args = append(args, "--timeout", c.cfg.Timeout)
	}
	if c.cfg.KeepAux {
		args = append(args, "--keep-aux")
	}
	if c.cfg.CleanFirst {
		args = append(args, "--clean-first")
	}
	if c.cfg.ShellEscape {
		args = append(args, "--shell-escape")
	}
	if c.quiet {
		args = append(args, "--quiet")
	}
	if c.verbose {
		args = append(args, "--verbose")
	}

	return append(args, article)
}

// splitMount splits "host:container" into its parts.
func splitMount(m string) (host, cont string, ok bool) {
	for i := 0; i < len(m); i++ {
		if m[i] == ':' {
			return m[:i], m[i+1:], true
		}
	}
	return "", "", false
}
