package git

import (
	"context"
	"sync"

	"github.com/randalmurphal/gitane"
)

// MockRunner is a CommandRunner for testing. It returns queued results in
// order and records every request it receives.
type MockRunner struct {
	mu       sync.Mutex
	results  []mockResult
	Requests []gitane.Request
}

type mockResult struct {
	res *gitane.Result
	err error
}

// NewMockRunner creates an empty MockRunner.
func NewMockRunner() *MockRunner {
	return &MockRunner{}
}

// AddOutput queues a result with the given stdout and error.
func (m *MockRunner) AddOutput(stdout string, err error) {
	m.AddOutputError(stdout, "", err)
}

// AddOutputError queues a result with stdout, stderr and error.
func (m *MockRunner) AddOutputError(stdout, stderr string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := &gitane.Result{Stdout: stdout, Stderr: stderr, Err: err}
	if err != nil {
		res.ExitCode = 1
	}
	m.results = append(m.results, mockResult{res: res, err: err})
}

// Run implements CommandRunner. With nothing queued it succeeds with no
// output.
func (m *MockRunner) Run(_ context.Context, req gitane.Request) (*gitane.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, req)
	if len(m.results) == 0 {
		return &gitane.Result{}, nil
	}
	next := m.results[0]
	m.results = m.results[1:]
	return next.res, next.err
}

// Args returns the argv of each recorded request, without the leading "git".
func (m *MockRunner) Args() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([][]string, len(m.Requests))
	for i, req := range m.Requests {
		if len(req.Args) > 0 {
			out[i] = req.Args[1:]
		}
	}
	return out
}
