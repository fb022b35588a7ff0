// Package config resolves gitane settings from layered sources.
//
// Precedence, highest first:
//  1. Command-line flags (ResolveWithFlags)
//  2. Environment variables (GITANE_TEMP_DIR, GITANE_KEY_MODE, ...)
//  3. Local config (.gitane.yaml in the git root)
//  4. Global config (~/.config/gitane/config.yaml)
//  5. Built-in defaults
//
// # Basic Usage
//
//	resolver := config.NewResolver(config.DefaultResolverConfig())
//	cfg := resolver.Resolve()
//
//	mode, err := cfg.FileMode(config.KeyKeyMode)   // 0600 unless overridden
//	fmt.Println(cfg.Source(config.KeyKeyMode))     // "default"
//
// # Keys
//
//   - temp_dir: directory for wrapper and key files (default: system temp)
//   - key_mode: octal permission of key files (default: 0600)
//   - detached: run children in a new session (default: true)
//   - extra_path: list-separated directories appended to PATH
//   - timeout: run timeout as a Go duration, e.g. "5m" (default: none)
//   - log_level: debug, info, warn or error (default: info)
package config
