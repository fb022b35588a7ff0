package git

import (
	"errors"
	"strings"
)

// Git operation errors.
var (
	// ErrNotGitRepo indicates the working directory is not a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrDestinationExists indicates a clone target is a non-empty directory.
	ErrDestinationExists = errors.New("destination already exists")

	// ErrRemoteNotFound indicates the remote name or repository does not exist.
	ErrRemoteNotFound = errors.New("remote not found")

	// ErrBranchNotFound indicates the branch does not exist on the remote.
	ErrBranchNotFound = errors.New("branch not found")

	// ErrPushRejected indicates the remote refused the push.
	ErrPushRejected = errors.New("push rejected")

	// ErrMergeConflict indicates a pull stopped on conflicts.
	ErrMergeConflict = errors.New("merge conflict")
)

// Error wraps a git command error with context.
type Error struct {
	Op     string // Operation that failed (e.g., "clone", "push")
	Cmd    string // Git command that was run
	Output string // stderr, or stdout when stderr was empty
	Err    error  // Underlying error
}

func (e *Error) Error() string {
	if e.Output != "" {
		return e.Op + ": " + e.Output
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// patterns maps git's stderr messages to sentinels. First match wins.
var patterns = []struct {
	substr string
	err    error
}{
	{"not a git repository", ErrNotGitRepo},
	{"already exists and is not an empty directory", ErrDestinationExists},
	{"does not appear to be a git repository", ErrRemoteNotFound},
	{"repository not found", ErrRemoteNotFound},
	{"couldn't find remote ref", ErrBranchNotFound},
	{"[rejected]", ErrPushRejected},
	{"[remote rejected]", ErrPushRejected},
	{"failed to push some refs", ErrPushRejected},
	{"conflict", ErrMergeConflict},
}

// classify returns the sentinel matching output, or nil.
func classify(output string) error {
	lower := strings.ToLower(output)
	for _, p := range patterns {
		if strings.Contains(lower, p.substr) {
			return p.err
		}
	}
	return nil
}
