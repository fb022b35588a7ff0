package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/ssh"
)

func TestSetupTestRepo(t *testing.T) {
	dir := SetupTestRepo(t)

	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		t.Errorf(".git directory missing: %v", err)
	}
	if branch := GetCurrentBranch(t, dir); branch == "" {
		t.Error("GetCurrentBranch returned empty string")
	}
	if sha := GetHeadSHA(t, dir); len(sha) != 40 {
		t.Errorf("SHA length = %d, want 40", len(sha))
	}
}

func TestSetupBareRemote(t *testing.T) {
	bare := SetupBareRemote(t)

	out, err := exec.Command("git", "--git-dir", bare, "rev-parse", "--is-bare-repository").Output()
	if err != nil {
		t.Fatalf("rev-parse: %v", err)
	}
	if got := strings.TrimSpace(string(out)); got != "true" {
		t.Errorf("is-bare-repository = %q, want true", got)
	}
}

func TestGenerateKey(t *testing.T) {
	pemBytes, pub := GenerateKey(t)

	signer, err := ssh.ParsePrivateKey(pemBytes)
	if err != nil {
		t.Fatalf("ParsePrivateKey() error = %v", err)
	}
	if ssh.FingerprintSHA256(signer.PublicKey()) != ssh.FingerprintSHA256(pub) {
		t.Error("public key does not match private key")
	}
}

func TestGenerateEncryptedKey(t *testing.T) {
	pemBytes, _ := GenerateEncryptedKey(t, "secret")

	if _, err := ssh.ParsePrivateKey(pemBytes); err == nil {
		t.Error("expected error parsing encrypted key without passphrase")
	}
	if _, err := ssh.ParsePrivateKeyWithPassphrase(pemBytes, []byte("secret")); err != nil {
		t.Errorf("ParsePrivateKeyWithPassphrase() error = %v", err)
	}
}

func TestFakeSSH(t *testing.T) {
	binDir, logPath := FakeSSH(t, 3)

	cmd := exec.Command(filepath.Join(binDir, "ssh"), "-i", "key", "host")
	err := cmd.Run()
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("error = %v, want *exec.ExitError", err)
	}
	if exitErr.ExitCode() != 3 {
		t.Errorf("exit code = %d, want 3", exitErr.ExitCode())
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if got := string(data); got != "-i\nkey\nhost\n" {
		t.Errorf("log = %q", got)
	}
}

func TestTestContext(t *testing.T) {
	ctx := TestContext(t)

	if err := ctx.Err(); err != nil {
		t.Fatalf("context already done: %v", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		testDeadline, _ := t.Deadline()
		if !deadline.Before(testDeadline) {
			t.Errorf("deadline %v not before test deadline %v", deadline, testDeadline)
		}
	}
}

func TestWithin(t *testing.T) {
	elapsed := Within(t, time.Minute, func() { time.Sleep(10 * time.Millisecond) })
	if elapsed < 10*time.Millisecond {
		t.Errorf("elapsed = %v, want at least 10ms", elapsed)
	}
}
