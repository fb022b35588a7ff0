package gitane

import (
	"os"
	"strings"
	"testing"

	"github.com/randalmurphal/gitane/testutil"
)

// sessionID returns the session field of a /proc/<pid>/stat line.
func sessionID(t *testing.T, stat string) string {
	t.Helper()

	// The command name is parenthesized and may contain spaces.
	i := strings.LastIndexByte(stat, ')')
	if i < 0 {
		t.Fatalf("malformed stat line %q", stat)
	}
	// state ppid pgrp session ...
	fields := strings.Fields(stat[i+1:])
	if len(fields) < 4 {
		t.Fatalf("malformed stat line %q", stat)
	}
	return fields[3]
}

func TestRunner_Run_Session(t *testing.T) {
	self, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		t.Skipf("procfs not available: %v", err)
	}
	parentSession := sessionID(t, string(self))

	tests := []struct {
		name       string
		opts       []Option
		attached   bool
		newSession bool
	}{
		{name: "detached by default", newSession: true},
		{name: "attached per request", attached: true},
		{name: "attached runner", opts: []Option{WithDetached(false)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRunner(t, tt.opts...)

			res, err := r.Run(testutil.TestContext(t), Request{
				Dir:      t.TempDir(),
				Key:      testKey,
				Args:     []string{"sh", "-c", `echo $$; read -r stat < /proc/$$/stat; echo "$stat"`},
				Attached: tt.attached,
			})
			if err != nil {
				t.Fatalf("Run() error = %v (stderr %q)", err, res.Stderr)
			}

			lines := strings.SplitN(strings.TrimSpace(res.Stdout), "\n", 2)
			if len(lines) != 2 {
				t.Fatalf("stdout = %q, want pid and stat lines", res.Stdout)
			}
			pid, session := lines[0], sessionID(t, lines[1])

			if tt.newSession {
				if session != pid {
					t.Errorf("session = %s, want the child's own pid %s", session, pid)
				}
				return
			}
			if session != parentSession {
				t.Errorf("session = %s, want the caller's session %s", session, parentSession)
			}
		})
	}
}
