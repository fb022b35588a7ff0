package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// RequireGit skips the test when no git executable is available.
func RequireGit(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// SetupTestRepo creates a temporary git repository with one commit.
// Returns the path to the repository.
// The repository is automatically cleaned up when the test ends.
func SetupTestRepo(t *testing.T) string {
	t.Helper()
	RequireGit(t)

	dir := t.TempDir()

	if err := runGit(t, dir, "init"); err != nil {
		t.Fatalf("git init failed: %v", err)
	}

	CommitFile(t, dir, "README.md", "# Test Repository\n", "Initial commit")

	return dir
}

// SetupBareRemote creates a bare repository populated from a fresh test
// repository, suitable as a clone source.
func SetupBareRemote(t *testing.T) string {
	t.Helper()

	src := SetupTestRepo(t)
	bare := filepath.Join(t.TempDir(), "remote.git")

	if err := runGit(t, src, "clone", "--bare", src, bare); err != nil {
		t.Fatalf("git clone --bare failed: %v", err)
	}

	return bare
}

// CommitFile creates or updates a file and commits it.
func CommitFile(t *testing.T, repoDir, path, content, message string) {
	t.Helper()

	fullPath := filepath.Join(repoDir, path)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}

	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}

	if err := runGit(t, repoDir, "add", path); err != nil {
		t.Fatalf("git add %s failed: %v", path, err)
	}

	if err := runGit(t, repoDir, "commit", "-m", message); err != nil {
		t.Fatalf("git commit failed: %v", err)
	}
}

// GetCurrentBranch returns the current branch name.
func GetCurrentBranch(t *testing.T, repoDir string) string {
	t.Helper()
	return gitOutput(t, repoDir, "rev-parse", "--abbrev-ref", "HEAD")
}

// GetHeadSHA returns the current HEAD SHA.
func GetHeadSHA(t *testing.T, repoDir string) string {
	t.Helper()
	return gitOutput(t, repoDir, "rev-parse", "HEAD")
}

func gitOutput(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		t.Fatalf("git %v failed: %v", args, err)
	}

	return strings.TrimSpace(string(output))
}

// runGit runs a git command in the specified directory.
func runGit(t *testing.T, dir string, args ...string) error {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Test User",
		"GIT_AUTHOR_EMAIL=test@test.com",
		"GIT_COMMITTER_NAME=Test User",
		"GIT_COMMITTER_EMAIL=test@test.com",
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("git %v output: %s", args, output)
		return err
	}

	return nil
}
