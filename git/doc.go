// Package git runs network git operations with a one-time SSH identity.
//
// Every operation materializes the context's private key for the duration
// of one git process, points GIT_SSH at a wrapper that uses it, and removes
// both files afterwards. Arguments are passed as an argv list, so URLs and
// paths may contain spaces.
//
// Example usage:
//
//	key, _ := os.ReadFile("/secrets/deploy_key")
//	gc, err := git.NewContext("/work", key)
//	if err != nil {
//	    return err
//	}
//	if err := gc.Clone(ctx, "git@github.com:o/r.git", "r"); err != nil {
//	    if errors.Is(err, git.ErrDestinationExists) {
//	        // ...
//	    }
//	}
//
//	refs, err := gc.In("/work/r").LsRemote(ctx, "origin")
package git
