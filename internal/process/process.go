// Package process terminates the headless browser together with its helpers.
package process

import (
	"errors"
	"fmt"
)

// ErrInvalidPID rejects PIDs that would target this process group or init.
var ErrInvalidPID = errors.New("invalid pid")

// KillTree force-kills pid and every process it spawned.
func KillTree(pid int) error {
	if pid <= 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	return killTree(pid)
}
