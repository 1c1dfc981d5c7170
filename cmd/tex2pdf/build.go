package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jcastellanos/go-tex2pdf/internal/container"
	"github.com/jcastellanos/go-tex2pdf/internal/hints"
)

// runBuildCmd builds the TeX Live container image from the embedded
// Dockerfile and returns an exit code.
func runBuildCmd(ctx context.Context, args []string, env *Environment) int {
	flags, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return ExitUsage
	}

	cfg, err := resolveConfig(&flags.common, env)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	tag := flags.tag
	if tag == "" {
		tag = cfg.Container.Image
	}

	rt, err := container.Detect()
	if err != nil {
		fmt.Fprintf(env.Stderr, "%v%s\n", err, hints.ForRuntimeMissing())
		return exitCodeFor(err)
	}

	if err := buildImage(ctx, rt, tag, flags.dockerfile, flags.common.quiet, env); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// buildImage writes the Dockerfile to a temp context and runs the image
// build, streaming runtime output unless quiet. An empty dockerfilePath
// selects the embedded Dockerfile.
func buildImage(ctx context.Context, rt container.Runtime, tag, dockerfilePath string, quiet bool, env *Environment) error {
	dockerfile, err := loadDockerfile(dockerfilePath, env)
	if err != nil {
		return err
	}

	contextDir, err := os.MkdirTemp("", "tex2pdf-build-")
	if err != nil {
		return fmt.Errorf("creating build context: %w", err)
	}
	defer os.RemoveAll(contextDir)

	dockerfileDst := filepath.Join(contextDir, "Dockerfile")
	if err := os.WriteFile(dockerfileDst, []byte(dockerfile), 0o644); err != nil {
		return fmt.Errorf("writing Dockerfile: %w", err)
	}

	logger := newLogger(env.Stderr, false)
	logger.Info("building image", "tag", tag, "runtime", rt.Name())
	start := time.Now()

	var output io.Writer
	if !quiet {
		output = env.Stdout
	}

	if err := rt.Build(ctx, container.BuildSpec{
		ContextDir: contextDir,
		Tag:        tag,
		Output:     output,
	}); err != nil {
		return err
	}

	logger.Info("image built", "tag", tag, "took", time.Since(start).Round(time.Second))
	return nil
}

// loadDockerfile returns the Dockerfile content for the build, from disk
// when a path is given, otherwise from the embedded assets.
func loadDockerfile(path string, env *Environment) (string, error) {
	if path == "" {
		content, err := env.Assets.Dockerfile()
		if err != nil {
			return "", fmt.Errorf("loading embedded Dockerfile: %w", err)
		}
		return content, nil
	}

	content, err := os.ReadFile(path) // #nosec G304 -- path comes from the user's own flag
	if err != nil {
		return "", fmt.Errorf("reading Dockerfile: %w", err)
	}
	return string(content), nil
}
