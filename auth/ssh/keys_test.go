package ssh

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/randalmurphal/gitane/testutil"
	gossh "golang.org/x/crypto/ssh"
)

func TestInspectPrivateKey(t *testing.T) {
	t.Run("unencrypted ed25519", func(t *testing.T) {
		key, pub := testutil.GenerateKey(t)

		info, err := InspectPrivateKey(key)
		if err != nil {
			t.Fatalf("InspectPrivateKey() error = %v", err)
		}
		if info.KeyType != "ssh-ed25519" {
			t.Errorf("KeyType = %q, want ssh-ed25519", info.KeyType)
		}
		if want := gossh.FingerprintSHA256(pub); info.Fingerprint != want {
			t.Errorf("Fingerprint = %q, want %q", info.Fingerprint, want)
		}
		if info.Encrypted {
			t.Error("Encrypted = true, want false")
		}
	})

	t.Run("encrypted openssh key", func(t *testing.T) {
		key, pub := testutil.GenerateEncryptedKey(t, "hunter2")

		info, err := InspectPrivateKey(key)
		if err != nil {
			t.Fatalf("InspectPrivateKey() error = %v", err)
		}
		if !info.Encrypted {
			t.Error("Encrypted = false, want true")
		}
		if want := gossh.FingerprintSHA256(pub); info.Fingerprint != want {
			t.Errorf("Fingerprint = %q, want %q", info.Fingerprint, want)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := InspectPrivateKey([]byte("not a key"))
		if !errors.Is(err, ErrInvalidKeyFormat) {
			t.Errorf("error = %v, want ErrInvalidKeyFormat", err)
		}
	})
}

func TestComputeFingerprint(t *testing.T) {
	_, pub := testutil.GenerateKey(t)

	if got, want := ComputeFingerprint(pub.Marshal()), gossh.FingerprintSHA256(pub); got != want {
		t.Errorf("ComputeFingerprint() = %q, want %q", got, want)
	}

	if ComputeFingerprint([]byte("a")) == ComputeFingerprint([]byte("b")) {
		t.Error("different inputs should give different fingerprints")
	}
}

func TestKeyInfo_LogValue(t *testing.T) {
	info := &KeyInfo{KeyType: "ssh-ed25519", Fingerprint: "SHA256:abc"}

	v := info.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("Kind = %v, want group", v.Kind())
	}
	attrs := v.Group()
	if len(attrs) != 3 || attrs[1].Key != "fingerprint" || attrs[1].Value.String() != "SHA256:abc" {
		t.Errorf("attrs = %v", attrs)
	}

	var nilInfo *KeyInfo
	if got := nilInfo.LogValue().String(); got != "unknown" {
		t.Errorf("nil LogValue = %q, want unknown", got)
	}
}

func TestFindDefaultKey(t *testing.T) {
	t.Run("preference order", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"id_rsa", "id_ecdsa"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("key"), 0o600); err != nil {
				t.Fatal(err)
			}
		}

		path, err := FindDefaultKey(Config{SSHDir: dir})
		if err != nil {
			t.Fatalf("FindDefaultKey() error = %v", err)
		}
		if want := filepath.Join(dir, "id_ecdsa"); path != want {
			t.Errorf("path = %q, want %q", path, want)
		}
	})

	t.Run("custom preference", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "deploy_key"), []byte("key"), 0o600); err != nil {
			t.Fatal(err)
		}

		path, err := FindDefaultKey(Config{SSHDir: dir, PreferredKeys: []string{"deploy_key"}})
		if err != nil {
			t.Fatalf("FindDefaultKey() error = %v", err)
		}
		if filepath.Base(path) != "deploy_key" {
			t.Errorf("path = %q", path)
		}
	})

	t.Run("skips directories", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.Mkdir(filepath.Join(dir, "id_ed25519"), 0o755); err != nil {
			t.Fatal(err)
		}

		_, err := FindDefaultKey(Config{SSHDir: dir})
		if !errors.Is(err, ErrNoSSHKeys) {
			t.Errorf("error = %v, want ErrNoSSHKeys", err)
		}
	})

	t.Run("no directory", func(t *testing.T) {
		_, err := FindDefaultKey(Config{SSHDir: filepath.Join(t.TempDir(), "missing")})
		if !errors.Is(err, ErrNoSSHKeys) {
			t.Errorf("error = %v, want ErrNoSSHKeys", err)
		}
	})
}
