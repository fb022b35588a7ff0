package testutil

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"testing"

	"golang.org/x/crypto/ssh"
)

// GenerateKey returns a fresh unencrypted ed25519 private key in OpenSSH
// PEM format together with its public key.
func GenerateKey(t *testing.T) ([]byte, ssh.PublicKey) {
	t.Helper()
	return generateKey(t, nil)
}

// GenerateEncryptedKey is GenerateKey with the private key protected by
// passphrase.
func GenerateEncryptedKey(t *testing.T, passphrase string) ([]byte, ssh.PublicKey) {
	t.Helper()
	return generateKey(t, []byte(passphrase))
}

func generateKey(t *testing.T, passphrase []byte) ([]byte, ssh.PublicKey) {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate ed25519 key: %v", err)
	}

	var block *pem.Block
	if passphrase == nil {
		block, err = ssh.MarshalPrivateKey(priv, "test@example.com")
	} else {
		block, err = ssh.MarshalPrivateKeyWithPassphrase(priv, "test@example.com", passphrase)
	}
	if err != nil {
		t.Fatalf("marshal private key: %v", err)
	}

	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		t.Fatalf("convert public key: %v", err)
	}

	return pem.EncodeToMemory(block), sshPub
}
