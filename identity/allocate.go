package identity

import (
	"fmt"
	"os"
	"path/filepath"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Ephemeral file naming.
const (
	WrapperPrefix = "_gitane"
	WrapperSuffix = ".sh"
	KeyPrefix     = "_gitaneid"
	KeySuffix     = ".key"

	// randomLength hex characters, i.e. 4 bytes of entropy.
	randomLength = 8
	hexAlphabet  = "0123456789abcdef"
)

// Allocator generates ephemeral file paths.
type Allocator struct {
	// Dir is the directory paths are created under.
	// Defaults to os.TempDir() if empty.
	Dir string
}

func (a Allocator) dir() string {
	if a.Dir != "" {
		return a.Dir
	}
	return os.TempDir()
}

// Allocate returns dir/prefix+random+suffix. It makes sure the directory
// exists but does not create the file; collisions are caught by the
// exclusive create in Materializer.Write.
func (a Allocator) Allocate(prefix, suffix string) (string, error) {
	random, err := nanoid.Generate(hexAlphabet, randomLength)
	if err != nil {
		return "", fmt.Errorf("generate temp name: %w", err)
	}

	dir := a.dir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", &FileError{Op: "create temp dir", Path: dir, Err: err}
	}

	return filepath.Join(dir, prefix+random+suffix), nil
}
