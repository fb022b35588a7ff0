package identity

// FileError wraps a filesystem failure with the operation and path.
type FileError struct {
	Op   string // Operation that failed (e.g., "write key", "chmod wrapper")
	Path string
	Err  error
}

func (e *FileError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}
