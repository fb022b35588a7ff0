package errors

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/randalmurphal/gitane"
)

// CLIError wraps an error with user-friendly context and suggestions.
type CLIError struct {
	// Err is the classified sentinel, joined with the original error.
	Err error

	// Message is a user-friendly description of what went wrong
	Message string

	// Suggestion is an actionable hint for the user
	Suggestion string

	// Details provides additional context (optional)
	Details string
}

func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}

	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// ErrorMessenger provides customizable error messages.
// Implement this interface to customize suggestions for your CLI.
type ErrorMessenger interface {
	// AuthFailedMessage is used when the remote rejects the key.
	AuthFailedMessage() (message, suggestion string)

	// HostKeyMessage is used when host key verification fails.
	HostKeyMessage() (message, suggestion string)

	// HostUnreachableMessage is used when the host cannot be reached.
	HostUnreachableMessage() (message, suggestion string)

	// RepoNotFoundMessage is used when the repository does not exist.
	RepoNotFoundMessage() (message, suggestion string)

	// KeyRejectedMessage is used when ssh cannot load the key file.
	KeyRejectedMessage() (message, suggestion string)

	// ToolMissingMessage is used when tool is not installed.
	ToolMissingMessage(tool string) (message, suggestion string)

	// TimeoutMessage is used when the command runs out of time.
	TimeoutMessage() (message, suggestion string)
}

// DefaultMessenger provides default error messages.
type DefaultMessenger struct{}

func (m DefaultMessenger) AuthFailedMessage() (string, string) {
	return "The remote rejected the SSH key.",
		"Check that the matching public key is registered as a deploy key or on your account."
}

func (m DefaultMessenger) HostKeyMessage() (string, string) {
	return "The remote host key could not be verified.",
		"The host key may have changed. Verify it and update ~/.ssh/known_hosts."
}

func (m DefaultMessenger) HostUnreachableMessage() (string, string) {
	return "Cannot reach the remote host.",
		"Check that:\n  - The remote URL is correct\n  - Your network connection is working\n  - The SSH port is not blocked"
}

func (m DefaultMessenger) RepoNotFoundMessage() (string, string) {
	return "Repository not found.",
		"Check the repository URL and that the key has access to it."
}

func (m DefaultMessenger) KeyRejectedMessage() (string, string) {
	return "ssh could not use the private key.",
		"Check that the key is a valid, unencrypted OpenSSH private key."
}

func (m DefaultMessenger) ToolMissingMessage(tool string) (string, string) {
	return tool + " is not installed or not on the search path.",
		"Install " + tool + " or add its directory with --path."
}

func (m DefaultMessenger) TimeoutMessage() (string, string) {
	return "The command timed out.",
		"The remote may be slow or unreachable.\nTry again or raise the timeout."
}

// WrapConfig configures error wrapping behavior.
type WrapConfig struct {
	Messenger ErrorMessenger
}

// Option configures WrapConfig.
type Option func(*WrapConfig)

// WithMessenger sets a custom error messenger.
func WithMessenger(m ErrorMessenger) Option {
	return func(c *WrapConfig) {
		c.Messenger = m
	}
}

func getMessenger(opts []Option) ErrorMessenger {
	cfg := &WrapConfig{
		Messenger: DefaultMessenger{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg.Messenger
}

// patterns maps ssh and git diagnostics to sentinels. First match wins, so
// more specific messages come first.
var patterns = []struct {
	substr string
	err    error
}{
	{"host key verification failed", ErrHostKey},
	{"remote host identification has changed", ErrHostKey},
	{"unprotected private key file", ErrKeyRejected},
	{"load key", ErrKeyRejected},
	{"invalid format", ErrKeyRejected},
	{"permission denied (publickey", ErrAuthFailed},
	{"permission denied, please try again", ErrAuthFailed},
	{"too many authentication failures", ErrAuthFailed},
	{"could not resolve hostname", ErrHostUnreachable},
	{"connection refused", ErrHostUnreachable},
	{"connection timed out", ErrHostUnreachable},
	{"network is unreachable", ErrHostUnreachable},
	{"no route to host", ErrHostUnreachable},
	{"connection closed by remote host", ErrHostUnreachable},
	{"repository not found", ErrRepoNotFound},
	{"project not found", ErrRepoNotFound},
	{"does not appear to be a git repository", ErrRepoNotFound},
	{"ssh: not found", ErrToolMissing},
	{"ssh: command not found", ErrToolMissing},
}

// Classify returns the sentinel describing err, or nil if err is not a
// recognized ssh or git failure. Captured stderr is inspected when err
// carries a *gitane.ExitError.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	if errors.Is(err, exec.ErrNotFound) {
		return ErrToolMissing
	}

	text := err.Error()
	var exitErr *gitane.ExitError
	if errors.As(err, &exitErr) {
		text = exitErr.Stderr + "\n" + text
	}
	text = strings.ToLower(text)

	for _, p := range patterns {
		if strings.Contains(text, p.substr) {
			return p.err
		}
	}
	return nil
}

// Wrap classifies err and wraps it with guidance. Unrecognized errors are
// returned unchanged.
func Wrap(err error, opts ...Option) error {
	sentinel := Classify(err)
	if sentinel == nil {
		return err
	}

	messenger := getMessenger(opts)
	var msg, suggestion string
	switch sentinel {
	case ErrAuthFailed:
		msg, suggestion = messenger.AuthFailedMessage()
	case ErrHostKey:
		msg, suggestion = messenger.HostKeyMessage()
	case ErrHostUnreachable:
		msg, suggestion = messenger.HostUnreachableMessage()
	case ErrRepoNotFound:
		msg, suggestion = messenger.RepoNotFoundMessage()
	case ErrKeyRejected:
		msg, suggestion = messenger.KeyRejectedMessage()
	case ErrToolMissing:
		msg, suggestion = messenger.ToolMissingMessage(toolName(err))
	case ErrTimeout:
		msg, suggestion = messenger.TimeoutMessage()
	}

	return &CLIError{
		Err:        errors.Join(sentinel, err),
		Message:    msg,
		Suggestion: suggestion,
		Details:    details(err),
	}
}

// toolName returns the executable a spawn failure was about.
func toolName(err error) string {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return execErr.Name
	}
	var spawnErr *gitane.SpawnError
	if errors.As(err, &spawnErr) {
		return spawnErr.Command
	}
	return "ssh"
}

// details returns the diagnostic lines from stderr, or the error text.
func details(err error) string {
	var exitErr *gitane.ExitError
	if errors.As(err, &exitErr) {
		var lines []string
		for _, line := range strings.Split(exitErr.Stderr, "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(strings.ToLower(line), "warning: permanently added") || line == "" {
				continue
			}
			lines = append(lines, line)
		}
		if len(lines) > 0 {
			return strings.Join(lines, "\n")
		}
	}
	return err.Error()
}
