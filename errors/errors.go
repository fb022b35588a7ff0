package errors

import "errors"

// Failures of ssh and git subprocesses.
var (
	// ErrAuthFailed indicates the remote did not accept the key.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrHostKey indicates the remote host key could not be verified.
	ErrHostKey = errors.New("host key verification failed")

	// ErrHostUnreachable indicates the remote host could not be reached.
	ErrHostUnreachable = errors.New("host unreachable")

	// ErrRepoNotFound indicates the repository does not exist or is hidden.
	ErrRepoNotFound = errors.New("repository not found")

	// ErrKeyRejected indicates ssh refused to load the key file.
	ErrKeyRejected = errors.New("key rejected")

	// ErrToolMissing indicates a required executable is not installed.
	ErrToolMissing = errors.New("executable not found")

	// ErrTimeout indicates the command exceeded its time limit.
	ErrTimeout = errors.New("timed out")
)
