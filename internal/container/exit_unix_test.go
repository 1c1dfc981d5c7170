//go:build !windows

package container_test

// Notes:
// - Exercises the exit-status extraction against a real short-lived
//   process; unix-only because the scripted command relies on sh

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/jcastellanos/go-tex2pdf/internal/container"
)

// exitRunner replaces the runtime binary with a shell that exits with a
// fixed status, the way docker run propagates the container's exit code.
type exitRunner struct {
	code string
}

func (r *exitRunner) Run(ctx context.Context, stdout, stderr io.Writer, _ string, _ ...string) error {
	return (&container.ExecRunner{}).Run(ctx, stdout, stderr, "sh", "-c", "exit "+r.code)
}

func (r *exitRunner) Output(_ context.Context, _ string, _ ...string) (string, error) {
	return "", nil
}

func TestCLIRuntime_Run_CarriesExitStatus(t *testing.T) {
	t.Parallel()

	rt := container.New("docker", &exitRunner{code: "5"})
	err := rt.Run(context.Background(), container.RunSpec{Image: "img"})

	if !errors.Is(err, container.ErrRunFailed) {
		t.Fatalf("Run() error = %v, want ErrRunFailed", err)
	}
	if code := container.ExitStatus(err); code != 5 {
		t.Errorf("ExitStatus = %d, want 5", code)
	}
}
