package tex2pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/jcastellanos/go-tex2pdf/internal/process"
)

// CommandRunner abstracts engine execution to enable testing without real
// subprocesses. Run executes name with args in dir and returns the combined
// console output; TeX engines report everything on stdout.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) (output string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.SysProcAttr = sysProcAttr()

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrEngineNotFound, name)
		}
		return "", fmt.Errorf("starting %s: %w", name, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		// Kill the whole group: shell-escape and font generation spawn
		// children that outlive the engine.
		process.KillProcessGroup(cmd.Process.Pid)
		<-done
		return output.String(), ctx.Err()
	case err := <-done:
		return output.String(), err
	}
}
