package gitane

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
)

// SearchPath is an append-only PATH value shared by every run of a Runner.
// It is safe for concurrent use.
type SearchPath struct {
	mu    sync.RWMutex
	value string
}

// NewSearchPath creates a search path starting at initial.
func NewSearchPath(initial string) *SearchPath {
	return &SearchPath{value: initial}
}

// Add appends segment, separated by the platform list separator.
// Runs started afterwards see the new value.
func (p *SearchPath) Add(segment string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.value = p.value + string(os.PathListSeparator) + segment
}

// String returns the current value.
func (p *SearchPath) String() string {
	if p == nil {
		return ""
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

// composeEnv builds the child environment. The parent environment is not
// inherited: only overrides, GIT_SSH and PATH are set. GIT_SSH always points
// at the wrapper; PATH comes from searchPath unless overrides set it.
func composeEnv(overrides map[string]string, wrapperPath, searchPath string) []string {
	vars := make(map[string]string, len(overrides)+2)
	for k, v := range overrides {
		vars[k] = v
	}
	vars["GIT_SSH"] = wrapperPath
	if _, ok := overrides["PATH"]; !ok && searchPath != "" {
		vars["PATH"] = searchPath
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+vars[k])
	}
	return env
}

// mergeEnv returns base overlaid with overrides.
func mergeEnv(base, overrides map[string]string) map[string]string {
	if len(base) == 0 {
		return overrides
	}
	merged := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// envValue returns the value of key in an env list built by composeEnv.
func envValue(env []string, key string) string {
	prefix := key + "="
	for _, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			return kv[len(prefix):]
		}
	}
	return ""
}

// lookPath resolves file against path, the PATH the child will see, rather
// than the parent's PATH as exec.LookPath would. Names containing a
// separator are returned unchanged and resolved relative to the working
// directory at start. Empty and relative path elements are skipped.
func lookPath(file, path string) (string, error) {
	if strings.ContainsAny(file, `/\`) {
		return file, nil
	}
	if runtime.GOOS == "windows" {
		return exec.LookPath(file)
	}

	for _, dir := range filepath.SplitList(path) {
		if !filepath.IsAbs(dir) {
			continue
		}
		candidate := filepath.Join(dir, file)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}
	return "", &exec.Error{Name: file, Err: exec.ErrNotFound}
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Mode().Perm()&0o111 != 0
}
