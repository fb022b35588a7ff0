package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/randalmurphal/gitane"
)

// CommandRunner runs a request with a one-time identity.
// *gitane.Runner implements it.
type CommandRunner interface {
	Run(ctx context.Context, req gitane.Request) (*gitane.Result, error)
}

// Context runs git operations in a directory with one SSH identity.
type Context struct {
	dir     string
	key     []byte
	keyMode os.FileMode
	events  gitane.EventSink
	env     map[string]string
	runner  CommandRunner
}

// Option configures Context.
type Option func(*Context)

// NewContext creates a git context for dir using key for SSH
// authentication. The directory does not have to be a repository yet, so a
// context can be used to clone into it.
func NewContext(dir string, key []byte, opts ...Option) (*Context, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	c := &Context{
		dir: absDir,
		key: key,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.runner == nil {
		c.runner = gitane.NewRunner()
	}

	return c, nil
}

// WithRunner sets the runner used for git processes.
// Default is gitane.NewRunner().
func WithRunner(runner CommandRunner) Option {
	return func(c *Context) {
		c.runner = runner
	}
}

// WithKeyMode sets the permission of the key file.
func WithKeyMode(mode os.FileMode) Option {
	return func(c *Context) {
		c.keyMode = mode
	}
}

// WithEvents streams git's output to sink while it runs.
func WithEvents(sink gitane.EventSink) Option {
	return func(c *Context) {
		c.events = sink
	}
}

// WithEnv sets extra environment variables for git, such as HOME or
// GIT_TERMINAL_PROMPT.
func WithEnv(env map[string]string) Option {
	return func(c *Context) {
		c.env = env
	}
}

// Dir returns the directory git runs in.
func (c *Context) Dir() string {
	return c.dir
}

// In returns a Context with the same identity that runs in dir.
// Relative paths are resolved against the current directory of c.
func (c *Context) In(dir string) *Context {
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.dir, dir)
	}
	clone := *c
	clone.dir = dir
	return &clone
}

// Clone clones url into dest. A relative dest is created under Dir.
func (c *Context) Clone(ctx context.Context, url, dest string) error {
	_, err := c.runGit(ctx, "clone", "clone", "--", url, dest)
	return err
}

// Fetch fetches updates from the remote.
func (c *Context) Fetch(ctx context.Context, remote string) error {
	_, err := c.runGit(ctx, "fetch", "fetch", remote)
	return err
}

// Pull pulls branch from the remote into the current branch.
func (c *Context) Pull(ctx context.Context, remote, branch string) error {
	_, err := c.runGit(ctx, "pull", "pull", remote, branch)
	return err
}

// Push pushes the branch to the remote.
// If setUpstream is true, uses -u to set upstream tracking.
func (c *Context) Push(ctx context.Context, remote, branch string, setUpstream bool) error {
	args := []string{"push"}
	if setUpstream {
		args = append(args, "-u")
	}
	args = append(args, remote, branch)

	_, err := c.runGit(ctx, "push", args...)
	return err
}

// LsRemote lists the references advertised by the remote.
func (c *Context) LsRemote(ctx context.Context, remote string) ([]Ref, error) {
	out, err := c.runGit(ctx, "ls-remote", "ls-remote", remote)
	if err != nil {
		return nil, err
	}
	refs, err := ParseRefs(out)
	if err != nil {
		return nil, &Error{Op: "ls-remote", Cmd: "git ls-remote " + remote, Err: err}
	}
	return refs, nil
}

// runGit runs git with args and returns stdout. Failures are *Error with
// the matching sentinel, if any, wrapped alongside the run error.
func (c *Context) runGit(ctx context.Context, op string, args ...string) (string, error) {
	res, err := c.runner.Run(ctx, gitane.Request{
		Dir:     c.dir,
		Key:     c.key,
		Args:    append([]string{"git"}, args...),
		KeyMode: c.keyMode,
		Events:  c.events,
		Env:     c.env,
	})
	if err == nil {
		return res.Stdout, nil
	}

	gitErr := &Error{
		Op:  op,
		Cmd: "git " + strings.Join(args, " "),
		Err: err,
	}
	if res != nil {
		gitErr.Output = strings.TrimSpace(res.Stderr)
		if gitErr.Output == "" {
			gitErr.Output = strings.TrimSpace(res.Stdout)
		}
	}
	if sentinel := classify(gitErr.Output); sentinel != nil {
		gitErr.Err = fmt.Errorf("%w: %w", sentinel, err)
	}
	return "", gitErr
}
