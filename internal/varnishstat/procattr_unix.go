//go:build unix

package varnishstat

import (
	"os/exec"
	"syscall"
)

// killProcessGroup makes context cancellation kill the command and all of its children.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
