package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"
)

// RequireShell skips the test on platforms without a POSIX shell.
func RequireShell(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell scripts are not supported on windows")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

// WriteScript writes an executable shell script named name into dir and
// returns its path. body is appended after the #!/bin/sh line.
func WriteScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	RequireShell(t)

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write script %s: %v", name, err)
	}
	return path
}

// FakeSSH installs an `ssh` script in a new directory that records its
// arguments, one per line, to the returned log file and then exits with
// exitCode. Put the directory first on PATH to intercept GIT_SSH wrappers.
func FakeSSH(t *testing.T, exitCode int) (binDir, logPath string) {
	t.Helper()

	binDir = t.TempDir()
	logPath = filepath.Join(t.TempDir(), "ssh.log")

	body := "for arg in \"$@\"; do echo \"$arg\" >> '" + logPath + "'; done\n" +
		"echo 'fake ssh: connection refused' >&2\n" +
		"exit " + strconv.Itoa(exitCode) + "\n"
	WriteScript(t, binDir, "ssh", body)

	return binDir, logPath
}
