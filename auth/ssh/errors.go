package ssh

import "errors"

// SSH key errors.
var (
	// ErrNoSSHKeys is returned when no private keys are found.
	ErrNoSSHKeys = errors.New("no SSH keys found")

	// ErrInvalidKeyFormat is returned when key material cannot be parsed.
	ErrInvalidKeyFormat = errors.New("invalid SSH private key format")

	// ErrEncryptedKey is returned when a key is passphrase protected and its
	// public half cannot be recovered without the passphrase.
	ErrEncryptedKey = errors.New("SSH private key is passphrase protected")
)
