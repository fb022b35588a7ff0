package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ValueError reports a value that cannot be interpreted for its key.
type ValueError struct {
	Key    string
	Value  string
	Source Source
	Err    error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid %s %q (from %s): %v", e.Key, e.Value, e.Source, e.Err)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

func (c *Resolved) invalid(key string, err error) error {
	return &ValueError{Key: key, Value: c.values[key], Source: c.sources[key], Err: err}
}

// Bool parses the key as a boolean. Unset keys are false.
func (c *Resolved) Bool(key string) (bool, error) {
	v := c.values[key]
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, c.invalid(key, err)
	}
	return b, nil
}

// Duration parses the key as a Go duration. Unset keys are zero.
func (c *Resolved) Duration(key string) (time.Duration, error) {
	v := c.values[key]
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, c.invalid(key, err)
	}
	if d < 0 {
		return 0, c.invalid(key, fmt.Errorf("negative duration"))
	}
	return d, nil
}

// FileMode parses the key as an octal permission such as "0600" or "600".
// Unset keys are zero.
func (c *Resolved) FileMode(key string) (os.FileMode, error) {
	v := c.values[key]
	if v == "" {
		return 0, nil
	}
	mode, err := ParseFileMode(v)
	if err != nil {
		return 0, c.invalid(key, err)
	}
	return mode, nil
}

// List splits the key on the path list separator, dropping empty entries.
func (c *Resolved) List(key string) []string {
	var out []string
	for _, part := range filepath.SplitList(c.values[key]) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// LogLevel parses the log_level key. Unset means info.
func (c *Resolved) LogLevel() (slog.Level, error) {
	var level slog.Level
	v := c.values[KeyLogLevel]
	if v == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(v)); err != nil {
		return slog.LevelInfo, c.invalid(KeyLogLevel, err)
	}
	return level, nil
}

// ParseFileMode parses an octal permission string.
func ParseFileMode(s string) (os.FileMode, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0o"), "0O")
	n, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("not an octal mode: %w", err)
	}
	if n == 0 || n > 0o777 {
		return 0, fmt.Errorf("mode %o out of range", n)
	}
	return os.FileMode(n), nil
}

// Validate checks that value is acceptable for key.
func Validate(key, value string) error {
	cfg := &Resolved{
		values:  map[string]string{key: value},
		sources: map[string]Source{key: SourceFlag},
	}

	var err error
	switch key {
	case KeyKeyMode:
		_, err = cfg.FileMode(key)
	case KeyDetached:
		_, err = cfg.Bool(key)
	case KeyTimeout:
		_, err = cfg.Duration(key)
	case KeyLogLevel:
		_, err = cfg.LogLevel()
	case KeyTempDir, KeyExtraPath:
	default:
		return fmt.Errorf("unknown config key: %s\n\nValid keys: %s", key, strings.Join(Keys, ", "))
	}
	return err
}
