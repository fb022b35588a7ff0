package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configuration keys.
const (
	KeyTempDir   = "temp_dir"
	KeyKeyMode   = "key_mode"
	KeyDetached  = "detached"
	KeyExtraPath = "extra_path"
	KeyTimeout   = "timeout"
	KeyLogLevel  = "log_level"
)

// Keys lists every configuration key.
var Keys = []string{KeyTempDir, KeyKeyMode, KeyDetached, KeyExtraPath, KeyTimeout, KeyLogLevel}

// Defaults are the built-in values.
var Defaults = map[string]string{
	KeyKeyMode:  "0600",
	KeyDetached: "true",
	KeyLogLevel: "info",
}

// ResolverConfig configures the hierarchical config resolver.
type ResolverConfig struct {
	// EnvPrefix is prepended to upper-cased keys for environment lookup.
	EnvPrefix string

	// GlobalConfigDir is the directory name under ~/.config/.
	GlobalConfigDir string

	// GlobalConfigFile is the filename for global config.
	// Defaults to "config.yaml" if empty.
	GlobalConfigFile string

	// LocalConfigName is the filename for local config in the git root.
	LocalConfigName string

	// Defaults provides the default values for configuration keys.
	Defaults map[string]string

	// ValidKeys lists keys accepted from config files. If nil, all keys are.
	ValidKeys []string

	// GitRootFinder finds the git root directory for local config.
	// If nil, walks up from the working directory looking for .git.
	GitRootFinder func(startDir string) (string, error)

	// ErrWriter is where warnings are written.
	// Defaults to os.Stderr if nil.
	ErrWriter io.Writer
}

// DefaultResolverConfig returns the configuration used by gitane.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		EnvPrefix:       "GITANE_",
		GlobalConfigDir: "gitane",
		LocalConfigName: ".gitane.yaml",
		Defaults:        Defaults,
		ValidKeys:       Keys,
	}
}

func (c ResolverConfig) globalConfigFile() string {
	if c.GlobalConfigFile != "" {
		return c.GlobalConfigFile
	}
	return "config.yaml"
}

// Resolver handles hierarchical configuration resolution.
type Resolver struct {
	config     ResolverConfig
	globalPath string
	localPath  string
	gitRoot    string

	// Warnings collects non-fatal issues during resolution.
	Warnings []string
}

// NewResolver creates a resolver, locating the global config under the home
// directory and the local config in the enclosing git repository.
func NewResolver(cfg ResolverConfig) *Resolver {
	r := NewResolverWithPaths(cfg, "", "")

	finder := cfg.GitRootFinder
	if finder == nil {
		finder = func(dir string) (string, error) { return findGitRoot(dir), nil }
	}
	if root, err := finder("."); err == nil && root != "" {
		r.gitRoot = root
		if cfg.LocalConfigName != "" {
			r.localPath = filepath.Join(root, cfg.LocalConfigName)
		}
	}

	if cfg.GlobalConfigDir != "" {
		if home, err := os.UserHomeDir(); err == nil {
			r.globalPath = filepath.Join(home, ".config", cfg.GlobalConfigDir, cfg.globalConfigFile())
		}
	}

	return r
}

// NewResolverWithPaths creates a resolver with explicit config file paths.
// Empty paths are skipped.
func NewResolverWithPaths(cfg ResolverConfig, globalPath, localPath string) *Resolver {
	if cfg.ErrWriter == nil {
		cfg.ErrWriter = os.Stderr
	}
	return &Resolver{
		config:     cfg,
		globalPath: globalPath,
		localPath:  localPath,
	}
}

func (r *Resolver) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
	fmt.Fprintf(r.config.ErrWriter, "Warning: %s\n", msg)
}

// Resolve builds the final config by merging all sources.
func (r *Resolver) Resolve() *Resolved {
	cfg := &Resolved{
		values:  make(map[string]string),
		sources: make(map[string]Source),
	}

	for key, value := range r.config.Defaults {
		cfg.set(key, value, SourceDefault)
	}
	r.applyFile(cfg, r.globalPath, SourceGlobal)
	r.applyFile(cfg, r.localPath, SourceLocal)
	r.applyEnv(cfg)

	return cfg
}

// ResolveWithFlags resolves config and applies non-empty flag overrides.
func (r *Resolver) ResolveWithFlags(flags map[string]string) *Resolved {
	cfg := r.Resolve()
	for key, value := range flags {
		if value != "" {
			cfg.set(key, value, SourceFlag)
		}
	}
	return cfg
}

func (r *Resolver) applyFile(cfg *Resolved, path string, source Source) {
	if path == "" {
		return
	}

	data, err := os.ReadFile(path) //nolint:gosec // config path
	if err != nil {
		return // missing file is not an error
	}

	// Nodes keep scalars as written, so 0600 stays octal text.
	var parsed map[string]yaml.Node
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		r.warn(fmt.Sprintf("could not parse %s: %v", path, err))
		return
	}

	for key, value := range parsed {
		if len(r.config.ValidKeys) > 0 && !contains(r.config.ValidKeys, key) {
			r.warn(fmt.Sprintf("%s: unknown key %q", path, key))
			continue
		}
		if s := nodeString(&value); s != "" {
			cfg.set(key, s, source)
		}
	}
}

func (r *Resolver) applyEnv(cfg *Resolved) {
	if r.config.EnvPrefix == "" {
		return
	}

	keys := make(map[string]bool)
	for _, k := range r.config.ValidKeys {
		keys[k] = true
	}
	for k := range cfg.values {
		keys[k] = true
	}

	for key := range keys {
		envKey := r.config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
		if value := os.Getenv(envKey); value != "" {
			cfg.set(key, value, SourceEnv)
		}
	}
}

// GitRoot returns the detected git root directory.
func (r *Resolver) GitRoot() string {
	return r.gitRoot
}

// GlobalPath returns the path to the global config file.
func (r *Resolver) GlobalPath() string {
	return r.globalPath
}

// LocalPath returns the path to the local config file.
func (r *Resolver) LocalPath() string {
	return r.localPath
}

// Resolved holds the final merged configuration.
type Resolved struct {
	values  map[string]string
	sources map[string]Source
}

func (c *Resolved) set(key, value string, source Source) {
	c.values[key] = value
	c.sources[key] = source
}

// Get returns the value for a key, or empty string if not set.
func (c *Resolved) Get(key string) string {
	return c.values[key]
}

// Source returns the source of a key's value.
func (c *Resolved) Source(key string) Source {
	return c.sources[key]
}

// All returns a copy of all key-value pairs.
func (c *Resolved) All() map[string]string {
	result := make(map[string]string, len(c.values))
	for k, v := range c.values {
		result[k] = v
	}
	return result
}

// Keys returns all set configuration keys, sorted.
func (c *Resolved) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// nodeString flattens a scalar or a sequence of scalars. Sequences are
// joined with the path list separator, for extra_path.
func nodeString(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return ""
		}
		return n.Value
	case yaml.SequenceNode:
		parts := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if s := nodeString(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, string(os.PathListSeparator))
	default:
		return ""
	}
}

// findGitRoot finds the git root by looking for a .git entry.
func findGitRoot(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
