package testutil

import (
	"context"
	"testing"
	"time"
)

// deadlineMargin is kept between a test context's deadline and the test
// binary's -timeout, so a hung child fails its own test with output.
const deadlineMargin = 5 * time.Second

// TestContext returns a context for running children in a test. It is
// canceled when the test ends and expires shortly before the test binary's
// -timeout.
func TestContext(t *testing.T) context.Context {
	t.Helper()

	ctx := t.Context()
	if deadline, ok := t.Deadline(); ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, deadline.Add(-deadlineMargin))
		t.Cleanup(cancel)
	}
	return ctx
}

// Within runs fn and fails the test if it takes longer than limit.
// It returns the elapsed time.
func Within(t *testing.T, limit time.Duration, fn func()) time.Duration {
	t.Helper()

	start := time.Now()
	fn()
	elapsed := time.Since(start)
	if elapsed > limit {
		t.Errorf("took %v, want at most %v", elapsed, limit)
	}
	return elapsed
}
