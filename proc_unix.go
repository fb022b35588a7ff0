//go:build unix

package gitane

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// configureProcess starts detached children in a new session so they have
// no controlling terminal and ssh cannot block on an interactive prompt.
// Cancellation then kills the whole session's process group.
func configureProcess(cmd *exec.Cmd, detached bool) {
	if !detached {
		return
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	cmd.Cancel = func() error {
		err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		if errors.Is(err, syscall.ESRCH) {
			return os.ErrProcessDone
		}
		return err
	}
}
