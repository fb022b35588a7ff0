// Command gitane runs git, or any command, with a one-time SSH identity.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/gitane"
	sshkey "github.com/randalmurphal/gitane/auth/ssh"
	"github.com/randalmurphal/gitane/config"
	clierrors "github.com/randalmurphal/gitane/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(execute(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI and returns the process exit status.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *gitane.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode > 0 {
		// The child already wrote its own diagnostics; add guidance only
		// for failures we recognize.
		if wrapped := clierrors.Wrap(err); wrapped != err {
			fmt.Fprintf(stderr, "\n%v\n", wrapped)
		}
		return exitErr.ExitCode
	}

	fmt.Fprintf(stderr, "Error: %v\n", clierrors.Wrap(err))
	return 1
}

// globalFlags are the flags shared by every subcommand.
type globalFlags struct {
	keyFile  string
	tempDir  string
	keyMode  string
	timeout  string
	logLevel string
	paths    []string
	attached bool
}

func (f *globalFlags) overrides() map[string]string {
	values := map[string]string{
		config.KeyTempDir:   f.tempDir,
		config.KeyKeyMode:   f.keyMode,
		config.KeyTimeout:   f.timeout,
		config.KeyLogLevel:  f.logLevel,
		config.KeyExtraPath: strings.Join(f.paths, string(os.PathListSeparator)),
	}
	if f.attached {
		values[config.KeyDetached] = strconv.FormatBool(false)
	}
	return values
}

// session is what a subcommand needs to run: the resolved config, a
// logger, a runner and the private key.
type session struct {
	cfg    *config.Resolved
	logger *slog.Logger
	runner *gitane.Runner
	key    []byte
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "gitane",
		Short: "Run git with a one-time SSH identity",
		Long: `gitane writes a private key and a GIT_SSH wrapper to temporary files,
runs the command with GIT_SSH pointing at the wrapper, and removes both files
when the command exits. Your own SSH configuration is left untouched.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.keyFile, "key", "k", "", "private key file (default: first of ~/.ssh/id_ed25519, id_ecdsa, id_rsa)")
	pf.StringVar(&flags.tempDir, "temp-dir", "", "directory for the key and wrapper files")
	pf.StringVar(&flags.keyMode, "key-mode", "", "octal permission of the key file (default 0600)")
	pf.StringVar(&flags.timeout, "timeout", "", "kill the command after this duration, e.g. 5m")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringArrayVar(&flags.paths, "path", nil, "append a directory to the command search path (repeatable)")
	pf.BoolVar(&flags.attached, "attached", false, "keep the command in this terminal session")

	root.AddCommand(
		newRunCmd(flags),
		newCloneCmd(flags),
		newLsRemoteCmd(flags),
		newConfigCmd(flags),
	)

	return root
}

// resolveConfig merges config files, environment and flags.
func resolveConfig(cmd *cobra.Command, flags *globalFlags) (*config.Resolved, *config.Resolver) {
	rc := config.DefaultResolverConfig()
	rc.ErrWriter = cmd.ErrOrStderr()
	resolver := config.NewResolver(rc)
	return resolver.ResolveWithFlags(flags.overrides()), resolver
}

// newSession resolves configuration, builds the runner and loads the key.
func newSession(cmd *cobra.Command, flags *globalFlags) (*session, error) {
	cfg, _ := resolveConfig(cmd, flags)

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	opts, err := gitane.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	opts = append(opts, gitane.WithLogger(logger), gitane.WithBaseEnv(inheritedEnv()))
	runner := gitane.NewRunner(opts...)

	key, err := loadKey(flags.keyFile, logger)
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, logger: logger, runner: runner, key: key}, nil
}

// passedEnv lists the parent variables children see. Everything else,
// SSH_AUTH_SOCK included, is withheld so ssh only offers the given key.
var passedEnv = []string{"HOME", "USER", "LOGNAME", "LANG", "LC_ALL", "TMPDIR", "TERM"}

func inheritedEnv() map[string]string {
	env := make(map[string]string, len(passedEnv))
	for _, name := range passedEnv {
		if v, ok := os.LookupEnv(name); ok {
			env[name] = v
		}
	}
	return env
}

// loadKey reads the private key from path, or from the default key in
// ~/.ssh when path is empty.
func loadKey(path string, logger *slog.Logger) ([]byte, error) {
	if path == "" {
		found, err := sshkey.FindDefaultKey(sshkey.Config{})
		if err != nil {
			return nil, fmt.Errorf("no --key given: %w", err)
		}
		path = found
	}

	key, err := os.ReadFile(path) //nolint:gosec // user-supplied key path
	if err != nil {
		return nil, fmt.Errorf("read key: %w", err)
	}

	info, err := sshkey.InspectPrivateKey(key)
	switch {
	case err != nil:
		logger.Warn("key could not be parsed, passing it to ssh as is", "path", path, "error", err)
	case info.Encrypted:
		logger.Warn("key is passphrase protected, ssh cannot prompt for it in a detached session", "path", path, "key", info)
	default:
		logger.Debug("loaded key", "path", path, "key", info)
	}

	return key, nil
}

// outputSink copies child output to the command's writers as it arrives.
func outputSink(cmd *cobra.Command) gitane.EventSink {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	return gitane.FuncSink(func(ev gitane.Event) {
		w := stdout
		if ev.Stream == gitane.StreamStderr {
			w = stderr
		}
		_, _ = io.WriteString(w, ev.Data)
	})
}
