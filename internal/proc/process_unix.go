//go:build unix

package proc

import (
	"os/exec"
	"syscall"
)

// setProcessGroup places the child in its own process group so killTree
// can reach every descendant.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killTree terminates the whole process group rooted at pid. Errors are
// deliberately ignored: the group may already be gone.
func killTree(pid int) {
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
