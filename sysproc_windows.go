//go:build windows

package tex2pdf

import "syscall"

// sysProcAttr is a no-op on Windows; taskkill /T handles tree termination.
func sysProcAttr() *syscall.SysProcAttr {
	return nil
}
