package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveConfig writes configuration values to the global or local file.
type SaveConfig struct {
	// GlobalConfigDir is the directory under ~/.config/ for global config.
	GlobalConfigDir string

	// GlobalConfigFile is the filename. Defaults to "config.yaml".
	GlobalConfigFile string

	// LocalConfigName is the filename for local config in git root.
	LocalConfigName string

	// HomeDir overrides the home directory. Defaults to os.UserHomeDir().
	HomeDir string
}

// DefaultSaveConfig returns the SaveConfig matching DefaultResolverConfig.
func DefaultSaveConfig() SaveConfig {
	cfg := DefaultResolverConfig()
	return SaveConfig{
		GlobalConfigDir: cfg.GlobalConfigDir,
		LocalConfigName: cfg.LocalConfigName,
	}
}

// GlobalPath returns the global config file path.
func (c SaveConfig) GlobalPath() (string, error) {
	if c.GlobalConfigDir == "" {
		return "", fmt.Errorf("global config directory not configured")
	}
	home := c.HomeDir
	if home == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return "", err
		}
	}
	file := c.GlobalConfigFile
	if file == "" {
		file = "config.yaml"
	}
	return filepath.Join(home, ".config", c.GlobalConfigDir, file), nil
}

// SaveGlobal validates and saves a key-value pair to the global config file.
func (c SaveConfig) SaveGlobal(key, value string) error {
	path, err := c.GlobalPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return saveKey(path, key, value, 0o600)
}

// SaveLocal validates and saves a key-value pair to the local config file
// in gitRoot.
func (c SaveConfig) SaveLocal(gitRoot, key, value string) error {
	if gitRoot == "" {
		return fmt.Errorf("git root not found")
	}
	if c.LocalConfigName == "" {
		return fmt.Errorf("local config name not configured")
	}
	return saveKey(filepath.Join(gitRoot, c.LocalConfigName), key, value, 0o644)
}

// DeleteGlobalKey removes a key from the global config.
func (c SaveConfig) DeleteGlobalKey(key string) error {
	path, err := c.GlobalPath()
	if err != nil {
		return err
	}

	existing, err := load(path)
	if err != nil || existing == nil {
		return nil // nothing to delete
	}
	delete(existing, key)
	return write(path, existing, 0o600)
}

func saveKey(path, key, value string, perm os.FileMode) error {
	if err := Validate(key, value); err != nil {
		return err
	}

	existing, err := load(path)
	if err != nil {
		return fmt.Errorf("%s is not valid YAML, refusing to overwrite: %w", path, err)
	}
	if existing == nil {
		existing = make(map[string]string)
	}
	existing[key] = value

	return write(path, existing, perm)
}

// load reads path as a flat string map. A missing file yields nil, nil.
func load(path string) (map[string]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path
	if err != nil {
		return nil, nil
	}

	var nodes map[string]yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(nodes))
	for k, n := range nodes {
		out[k] = nodeString(&n)
	}
	return out, nil
}

func write(path string, values map[string]string, perm os.FileMode) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}
