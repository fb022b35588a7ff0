package identity

import (
	"errors"
	"io/fs"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultKeyMode is the permission applied to key files unless overridden.
const DefaultKeyMode os.FileMode = 0o600

// wrapperMode is always applied to the wrapper script.
const wrapperMode os.FileMode = 0o755

const wrapperTemplate = "#!/bin/sh\n" +
	"exec ssh -i $key -o StrictHostKeyChecking=no \"$@\"\n"

// RenderWrapper returns the wrapper script text for keyPath.
func RenderWrapper(keyPath string) string {
	return strings.Replace(wrapperTemplate, "$key", keyPath, 1)
}

// WriteOptions configures a single Write call.
type WriteOptions struct {
	// WrapperPath is where the wrapper script is written.
	// A fresh temp path is allocated if empty.
	WrapperPath string

	// KeyMode is the permission of the key file.
	// Defaults to 0600 if zero.
	KeyMode os.FileMode
}

func (o WriteOptions) keyMode() os.FileMode {
	if o.KeyMode == 0 {
		return DefaultKeyMode
	}
	return o.KeyMode
}

// Files is a materialized identity: a wrapper script and its key file.
type Files struct {
	WrapperPath string
	KeyPath     string
}

// Remove deletes both files. Missing files are not an error.
func (f *Files) Remove() error {
	if f == nil {
		return nil
	}
	var errs []error
	for _, path := range []string{f.WrapperPath, f.KeyPath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, &FileError{Op: "remove", Path: path, Err: err})
		}
	}
	return errors.Join(errs...)
}

// Materializer writes identity files.
type Materializer struct {
	Allocator Allocator
}

// NewMaterializer creates a Materializer allocating paths under dir.
// An empty dir means the system temp directory.
func NewMaterializer(dir string) *Materializer {
	return &Materializer{Allocator: Allocator{Dir: dir}}
}

// WriteFiles writes key and a wrapper script using the system temp directory.
func WriteFiles(key []byte, opts WriteOptions) (*Files, error) {
	return NewMaterializer("").Write(key, opts)
}

// Write allocates paths, writes the wrapper and key concurrently, then
// applies permissions concurrently. On any failure the files it created are
// removed and no paths are returned.
func (m *Materializer) Write(key []byte, opts WriteOptions) (*Files, error) {
	wrapper := target{path: opts.WrapperPath}
	if wrapper.path == "" {
		path, err := m.Allocator.Allocate(WrapperPrefix, WrapperSuffix)
		if err != nil {
			return nil, err
		}
		wrapper = target{path: path, exclusive: true}
	}

	keyPath, err := m.Allocator.Allocate(KeyPrefix, KeySuffix)
	if err != nil {
		return nil, err
	}
	keyFile := target{path: keyPath, exclusive: true}

	script := []byte(RenderWrapper(keyFile.path))

	var writes errgroup.Group
	writes.Go(func() error { return wrapper.write("write wrapper", script) })
	writes.Go(func() error { return keyFile.write("write key", key) })
	if err := writes.Wait(); err != nil {
		wrapper.discard()
		keyFile.discard()
		return nil, err
	}

	var perms errgroup.Group
	perms.Go(func() error { return chmod("chmod wrapper", wrapper.path, wrapperMode) })
	perms.Go(func() error { return chmod("chmod key", keyFile.path, opts.keyMode()) })
	if err := perms.Wait(); err != nil {
		wrapper.discard()
		keyFile.discard()
		return nil, err
	}

	return &Files{WrapperPath: wrapper.path, KeyPath: keyFile.path}, nil
}

// target is one file being written. created records whether this call
// brought the file into existence, so a failed Write never removes a file
// that was already there.
type target struct {
	path      string
	exclusive bool
	created   bool
}

func (t *target) write(op string, data []byte) error {
	const flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC

	f, err := os.OpenFile(t.path, flags|os.O_EXCL, 0o600) //nolint:gosec // path is allocated or caller-provided
	created := err == nil
	if !t.exclusive && errors.Is(err, fs.ErrExist) {
		f, err = os.OpenFile(t.path, flags, 0o600) //nolint:gosec // caller-provided wrapper path
	}
	if err != nil {
		return &FileError{Op: op, Path: t.path, Err: err}
	}
	t.created = created

	if _, err := f.Write(data); err != nil {
		f.Close()
		return &FileError{Op: op, Path: t.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &FileError{Op: op, Path: t.path, Err: err}
	}
	return nil
}

func (t *target) discard() {
	if t.created {
		_ = os.Remove(t.path)
	}
}

// chmod is a no-op where the platform has no file-mode bits.
func chmod(op, path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	if err := os.Chmod(path, mode); err != nil {
		return &FileError{Op: op, Path: path, Err: err}
	}
	return nil
}
