//go:build !windows

package process

import "syscall"

// killTree signals the whole process group (negative PID).
func killTree(pid int) error {
	return syscall.Kill(-pid, syscall.SIGKILL)
}
