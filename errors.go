package gitane

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCommand is returned when a request names no command.
var ErrEmptyCommand = errors.New("empty command")

// SpawnError indicates the command could not be started, for example
// because the executable is missing or not executable.
type SpawnError struct {
	Command string
	Args    []string
	Err     error
}

func (e *SpawnError) Error() string {
	return "start " + e.Command + ": " + e.Err.Error()
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// ExitError indicates the command ran but did not exit with status 0.
// It carries the captured output so failures can be diagnosed without
// rerunning.
type ExitError struct {
	Command  string
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error // *exec.ExitError, or the context error on cancellation
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s: process exited with status %d", e.Command, e.ExitCode)
	if e.Err != nil && e.ExitCode < 0 {
		msg = fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	if line := lastLine(e.Stderr); line != "" {
		msg += ": " + line
	}
	return msg
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}
