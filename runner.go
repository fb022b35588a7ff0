package gitane

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	sshkey "github.com/randalmurphal/gitane/auth/ssh"
	"github.com/randalmurphal/gitane/identity"
)

// pipeWaitDelay bounds how long a finished or killed child's output pipes
// are kept open by processes it left behind.
const pipeWaitDelay = time.Second

// Runner runs commands with one-time SSH identities. A Runner is safe for
// concurrent use; every run gets its own wrapper and key files.
type Runner struct {
	materializer *identity.Materializer
	path         *SearchPath
	keyMode      os.FileMode
	detached     bool
	timeout      time.Duration
	baseEnv      map[string]string
	logger       *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// NewRunner creates a Runner. The search path starts as the current PATH.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		materializer: identity.NewMaterializer(""),
		path:         NewSearchPath(os.Getenv("PATH")),
		keyMode:      identity.DefaultKeyMode,
		detached:     true,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// WithTempDir sets where wrapper and key files are created.
// Default is the system temp directory.
func WithTempDir(dir string) Option {
	return func(r *Runner) {
		r.materializer = identity.NewMaterializer(dir)
	}
}

// WithKeyMode sets the default key file permission.
func WithKeyMode(mode os.FileMode) Option {
	return func(r *Runner) {
		if mode != 0 {
			r.keyMode = mode
		}
	}
}

// WithDetached sets whether children are detached from the caller's
// session by default. Default is true.
func WithDetached(detached bool) Option {
	return func(r *Runner) {
		r.detached = detached
	}
}

// WithTimeout sets the default run timeout. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithSearchPath replaces the search path, e.g. to share one between Runners.
func WithSearchPath(p *SearchPath) Option {
	return func(r *Runner) {
		if p != nil {
			r.path = p
		}
	}
}

// WithBaseEnv sets variables every run starts from. Request.Env entries
// take precedence. By default children get no parent variables.
func WithBaseEnv(env map[string]string) Option {
	return func(r *Runner) {
		r.baseEnv = env
	}
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// AddPath appends segment to the Runner's search path for all later runs.
func (r *Runner) AddPath(segment string) {
	r.path.Add(segment)
}

// SearchPath returns the Runner's search path.
func (r *Runner) SearchPath() *SearchPath {
	return r.path
}

// Run executes the request and waits for it to finish. The returned error
// is the Result's Err: *identity.FileError, *SpawnError or *ExitError.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	return r.Start(ctx, req).Wait()
}

// Clone runs "git clone " + args in dir.
func (r *Runner) Clone(ctx context.Context, args, dir string, key []byte) (*Result, error) {
	return r.Run(ctx, Request{Dir: dir, Key: key, Command: "git clone " + args})
}

// Pending is a run in progress.
type Pending struct {
	done   chan struct{}
	result *Result
}

// Start begins the run in the background and returns immediately.
func (r *Runner) Start(ctx context.Context, req Request) *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.result = r.run(ctx, req)
	}()
	return p
}

// Done is closed once the run has completed and its files are removed.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the run completes.
func (p *Pending) Wait() (*Result, error) {
	<-p.done
	return p.result, p.result.Err
}

func (r *Runner) run(ctx context.Context, req Request) *Result {
	start := time.Now()

	name, args, err := req.argv()
	if err != nil {
		return &Result{ExitCode: -1, Err: &SpawnError{Command: req.Command, Err: err}}
	}

	keyMode := req.KeyMode
	if keyMode == 0 {
		keyMode = r.keyMode
	}
	files, err := r.materializer.Write(req.Key, identity.WriteOptions{KeyMode: keyMode})
	if err != nil {
		return &Result{ExitCode: -1, Err: err}
	}
	defer r.cleanup(files)

	res := r.spawn(ctx, req, name, args, files)
	res.WrapperPath = files.WrapperPath
	res.KeyPath = files.KeyPath
	res.Duration = time.Since(start)

	r.logger.Debug("command finished",
		"command", name,
		"exit_code", res.ExitCode,
		"duration", res.Duration,
		"error", res.Err,
	)
	return res
}

// cleanup removes the run's files. Failures are logged and otherwise
// ignored so they never replace the run's own result.
func (r *Runner) cleanup(files *identity.Files) {
	if err := files.Remove(); err != nil {
		r.logger.Warn("failed to remove identity files",
			"wrapper", files.WrapperPath,
			"key_file", files.KeyPath,
			"error", err,
		)
	}
}

func (r *Runner) spawn(ctx context.Context, req Request, name string, args []string, files *identity.Files) *Result {
	timeout := req.Timeout
	if timeout == 0 {
		timeout = r.timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	env := composeEnv(mergeEnv(r.baseEnv, req.Env), files.WrapperPath, r.path.String())
	detached := r.detached && !req.Attached

	if r.logger.Enabled(ctx, slog.LevelDebug) {
		r.logger.Debug("starting command",
			"command", name,
			"args", args,
			"dir", req.Dir,
			"wrapper", files.WrapperPath,
			"detached", detached,
			"key", describeKey(req.Key),
		)
	}

	spawnErr := func(err error) *Result {
		return &Result{ExitCode: -1, Err: &SpawnError{Command: name, Args: args, Err: err}}
	}

	exe, err := lookPath(name, envValue(env, "PATH"))
	if err != nil {
		return spawnErr(err)
	}

	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Args[0] = name
	cmd.Dir = req.Dir
	cmd.Env = env
	configureProcess(cmd, detached)

	// WaitDelay closes the output pipes if a grandchild, such as the ssh
	// started by git, still holds them after the child exits or is killed.
	outR, outW := io.Pipe()
	errR, errW := io.Pipe()
	cmd.Stdout = outW
	cmd.Stderr = errW
	cmd.WaitDelay = pipeWaitDelay

	var (
		outBuf, errBuf strings.Builder
		readers        errgroup.Group
	)
	readers.Go(func() error { return drain(outR, StreamStdout, &outBuf, req.Events) })
	readers.Go(func() error { return drain(errR, StreamStderr, &errBuf, req.Events) })

	waitErr := cmd.Start()
	if waitErr == nil {
		waitErr = cmd.Wait()
	}
	outW.Close()
	errW.Close()
	readErr := readers.Wait()

	if cmd.Process == nil {
		return spawnErr(waitErr)
	}

	res := &Result{Stdout: outBuf.String(), Stderr: errBuf.String()}
	finish(res, name, args, waitErr, ctx.Err(), readErr)
	return res
}

// finish sets the exit code and error of a run whose process started.
// ctxErr, when set, replaces waitErr as the cause so callers can match
// context.DeadlineExceeded. Output read failures are never dropped.
func finish(res *Result, name string, args []string, waitErr, ctxErr, readErr error) {
	if waitErr == nil {
		res.Err = readErr
		return
	}

	res.ExitCode = -1
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
	}

	cause := waitErr
	if ctxErr != nil {
		cause = ctxErr
	}
	if readErr != nil {
		cause = errors.Join(cause, readErr)
	}
	res.Err = &ExitError{
		Command:  name,
		Args:     args,
		ExitCode: res.ExitCode,
		Stdout:   res.Stdout,
		Stderr:   res.Stderr,
		Err:      cause,
	}
}

// describeKey returns a loggable description of key, never the key itself.
func describeKey(key []byte) any {
	info, err := sshkey.InspectPrivateKey(key)
	if err != nil {
		return "unparsed"
	}
	return info
}

// drain pumps r until EOF. On a read or decode error it closes r so the
// writing side fails instead of blocking on a reader that has gone.
func drain(r *io.PipeReader, stream Stream, buf *strings.Builder, sink EventSink) error {
	err := pump(r, stream, buf, sink)
	if err != nil {
		r.CloseWithError(err)
	}
	return err
}
