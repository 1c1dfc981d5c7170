//go:build !windows

// Package process provides process-group termination used when a TeX engine
// run exceeds its timeout.
package process

import "syscall"

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID). TeX engines can spawn subprocesses
// (shell-escape, metafont), so killing only the parent would leak them.
func KillProcessGroup(pid int) {
	// Best-effort cleanup; the caller reports the timeout either way
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
