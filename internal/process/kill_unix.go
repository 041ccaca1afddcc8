//go:build !windows

package process

import (
	"errors"
	"syscall"
)

// KillTree kills the process group led by pid so the browser's renderer
// children go with it. A group that is already gone is not an error.
func KillTree(pid int) error {
	if pid <= 0 {
		return ErrInvalidPID
	}
	err := syscall.Kill(-pid, syscall.SIGKILL)
	if errors.Is(err, syscall.ESRCH) {
		return nil
	}
	return err
}
