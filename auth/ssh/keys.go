package ssh

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	gossh "golang.org/x/crypto/ssh"
)

// Config holds configuration for locating keys.
type Config struct {
	// SSHDir is the SSH directory path.
	// Defaults to ~/.ssh if empty.
	SSHDir string

	// PreferredKeys is the preference order for private key files.
	// Defaults to ed25519, ecdsa, rsa if empty.
	PreferredKeys []string
}

// DefaultPreferredKeys is the default key preference order.
var DefaultPreferredKeys = []string{
	"id_ed25519",
	"id_ecdsa",
	"id_rsa",
}

func (c Config) sshDir() (string, error) {
	if c.SSHDir != "" {
		return c.SSHDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".ssh"), nil
}

func (c Config) preferredKeys() []string {
	if len(c.PreferredKeys) > 0 {
		return c.PreferredKeys
	}
	return DefaultPreferredKeys
}

// KeyInfo describes a private key without exposing it.
type KeyInfo struct {
	// KeyType is the key algorithm (e.g., "ssh-ed25519", "ssh-rsa").
	KeyType string

	// Fingerprint is the SHA256 fingerprint of the public key.
	Fingerprint string

	// Encrypted reports whether the key is passphrase protected.
	Encrypted bool
}

// LogValue implements slog.LogValuer.
func (k *KeyInfo) LogValue() slog.Value {
	if k == nil {
		return slog.StringValue("unknown")
	}
	return slog.GroupValue(
		slog.String("type", k.KeyType),
		slog.String("fingerprint", k.Fingerprint),
		slog.Bool("encrypted", k.Encrypted),
	)
}

// InspectPrivateKey parses PEM/OpenSSH private key material and describes it.
// Passphrase-protected keys in the OpenSSH format still yield a KeyInfo,
// since their public half is stored in clear.
func InspectPrivateKey(data []byte) (*KeyInfo, error) {
	signer, err := gossh.ParsePrivateKey(data)
	if err != nil {
		var missing *gossh.PassphraseMissingError
		if errors.As(err, &missing) {
			if missing.PublicKey == nil {
				return nil, ErrEncryptedKey
			}
			return describe(missing.PublicKey, true), nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}
	return describe(signer.PublicKey(), false), nil
}

func describe(pub gossh.PublicKey, encrypted bool) *KeyInfo {
	return &KeyInfo{
		KeyType:     pub.Type(),
		Fingerprint: ComputeFingerprint(pub.Marshal()),
		Encrypted:   encrypted,
	}
}

// FindDefaultKey returns the path of the first preferred private key that
// exists in the SSH directory.
func FindDefaultKey(cfg Config) (string, error) {
	sshDir, err := cfg.sshDir()
	if err != nil {
		return "", err
	}

	for _, name := range cfg.preferredKeys() {
		path := filepath.Join(sshDir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}

	return "", ErrNoSSHKeys
}
