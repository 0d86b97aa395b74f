//go:build !windows

package session

import (
	"os"
	"syscall"
)

// sysProcAttr puts the worker in its own process group so a Ctrl+C aimed
// at the controller does not reach it; the worker must outlive the stop
// signal to finish transcribing.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

// killProcessGroup terminates the worker together with any children it
// started. Setpgid above makes the worker's pid the group id.
func killProcessGroup(p *os.Process) error {
	if err := syscall.Kill(-p.Pid, syscall.SIGKILL); err != nil {
		return p.Kill()
	}
	return nil
}
