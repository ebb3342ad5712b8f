//go:build windows

package proc

import (
	"os/exec"
	"strconv"
)

func setProcessGroup(cmd *exec.Cmd) {}

// killTree terminates pid and its descendants via taskkill, the closest
// Windows equivalent of killing a process group.
func killTree(pid int) {
	_ = exec.Command("taskkill", "/T", "/F", "/PID", strconv.Itoa(pid)).Run()
}
