package gitane

import (
	"os"
	"strings"
	"time"
)

// Request describes one command run with a one-time identity.
type Request struct {
	// Dir is the working directory of the command.
	Dir string

	// Key is the raw private key. It is written to a temp file for the
	// duration of the run and never logged.
	Key []byte

	// Command is split on whitespace into executable and arguments.
	// No quoting is understood; use Args for arguments with spaces.
	Command string

	// Args is the full argv, executable first. Takes precedence over Command.
	Args []string

	// KeyMode is the permission of the key file.
	// Defaults to the Runner's key mode (0600) if zero.
	KeyMode os.FileMode

	// Attached keeps the child in the caller's session. By default it is
	// detached so ssh cannot prompt on a terminal.
	Attached bool

	// Events receives output chunks as they arrive. Optional.
	Events EventSink

	// Env is the child environment. The parent environment is not
	// inherited; GIT_SSH is always set and PATH defaults to the Runner's
	// search path.
	Env map[string]string

	// Timeout bounds the run. Defaults to the Runner's timeout; zero means
	// no limit.
	Timeout time.Duration
}

// argv returns the executable name and its arguments.
func (r Request) argv() (string, []string, error) {
	fields := r.Args
	if len(fields) == 0 {
		fields = strings.Fields(r.Command)
	}
	if len(fields) == 0 || fields[0] == "" {
		return "", nil, ErrEmptyCommand
	}
	return fields[0], fields[1:], nil
}

// Result is the outcome of a run. Output and exit code are populated even
// when Err is set.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int // -1 if the process never started or was killed by a signal
	Err      error

	// WrapperPath and KeyPath are the identity files used for the run.
	// They no longer exist when the Result is returned.
	WrapperPath string
	KeyPath     string

	Duration time.Duration
}

// Success reports whether the command ran and exited with status 0.
func (r *Result) Success() bool {
	return r.Err == nil && r.ExitCode == 0
}
