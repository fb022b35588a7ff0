//go:build !unix

package gitane

import "os/exec"

// configureProcess is a no-op where sessions are not available; the child
// still gets no stdin.
func configureProcess(cmd *exec.Cmd, detached bool) {}
