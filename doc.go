// Package gitane runs git (or any command) with a one-time SSH identity.
//
// For every run a private key file and a small wrapper script are written to
// the temp directory, GIT_SSH points at the wrapper, the command is spawned,
// its output captured, and both files are removed again. The caller's own SSH
// configuration is never touched.
//
// # Running Commands
//
//	runner := gitane.NewRunner()
//
//	res, err := runner.Run(ctx, gitane.Request{
//	    Dir:     "/srv/checkouts",
//	    Key:     privateKey,
//	    Command: "git clone git@github.com:org/repo.git",
//	})
//	if err != nil {
//	    var exitErr *gitane.ExitError
//	    if errors.As(err, &exitErr) {
//	        fmt.Println(exitErr.Stderr)
//	    }
//	}
//	fmt.Println(res.Stdout)
//
// Command is split on whitespace. Use Args to pass arguments that contain
// spaces:
//
//	runner.Run(ctx, gitane.Request{Dir: dir, Key: key, Args: []string{"git", "commit", "-m", "two words"}})
//
// # Live Output
//
// Set Request.Events to receive stdout and stderr chunks as they arrive.
// Output is still buffered into the Result.
//
//	sink := gitane.NewChannelSink(64)
//	go func() {
//	    for ev := range sink.Events() {
//	        fmt.Printf("[%s] %s", ev.Stream, ev.Data)
//	    }
//	}()
//	res, err := runner.Run(ctx, gitane.Request{..., Events: sink})
//	sink.Close()
//
// # Search Path
//
// Each Runner owns a search path, initialised from PATH, used both to find the
// executable and as PATH for the child. Segments can only be appended:
//
//	runner.AddPath("/opt/git/bin")
package gitane
