package gitane

import (
	"os"

	"github.com/randalmurphal/gitane/config"
)

// OptionsFromConfig converts resolved configuration into Runner options.
// Extra path segments are appended to a search path seeded from PATH.
func OptionsFromConfig(cfg *config.Resolved) ([]Option, error) {
	var opts []Option

	if dir := cfg.Get(config.KeyTempDir); dir != "" {
		opts = append(opts, WithTempDir(dir))
	}

	mode, err := cfg.FileMode(config.KeyKeyMode)
	if err != nil {
		return nil, err
	}
	opts = append(opts, WithKeyMode(mode))

	if cfg.Get(config.KeyDetached) != "" {
		detached, err := cfg.Bool(config.KeyDetached)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithDetached(detached))
	}

	timeout, err := cfg.Duration(config.KeyTimeout)
	if err != nil {
		return nil, err
	}
	opts = append(opts, WithTimeout(timeout))

	if extra := cfg.List(config.KeyExtraPath); len(extra) > 0 {
		path := NewSearchPath(os.Getenv("PATH"))
		for _, segment := range extra {
			path.Add(segment)
		}
		opts = append(opts, WithSearchPath(path))
	}

	return opts, nil
}
