//go:build !windows

package tex2pdf

import "syscall"

// sysProcAttr puts the engine in its own process group so a timeout can
// kill it together with any children it spawned.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}
