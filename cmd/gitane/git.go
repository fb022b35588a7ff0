package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/gitane"
	"github.com/randalmurphal/gitane/git"
)

func newCloneCmd(flags *globalFlags) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "clone [flags] -- <clone args>",
		Short: "Clone a repository with a one-time identity",
		Long: `Runs "git clone <clone args>" in --dir. The clone arguments are joined
with spaces and split again on whitespace, so they cannot contain spaces.`,
		Example: `  gitane clone --key deploy_key -- git@github.com:org/repo.git
  gitane clone --key deploy_key --dir /srv -- --depth 1 git@github.com:org/repo.git`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags)
			if err != nil {
				return err
			}

			res, err := s.runner.Clone(cmd.Context(), strings.Join(args, " "), dir, s.key)
			if res != nil {
				fmt.Fprint(cmd.OutOrStdout(), res.Stdout)
				fmt.Fprint(cmd.ErrOrStderr(), res.Stderr)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "directory to clone into")

	return cmd
}

func newLsRemoteCmd(flags *globalFlags) *cobra.Command {
	var (
		dir      string
		branches bool
	)

	cmd := &cobra.Command{
		Use:   "ls-remote [flags] <remote>",
		Short: "List references in a remote repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags)
			if err != nil {
				return err
			}

			gc, err := git.NewContext(dir, s.key,
				git.WithRunner(s.runner),
				git.WithEvents(gitane.NewLogSink(s.logger)),
			)
			if err != nil {
				return err
			}

			refs, err := gc.LsRemote(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if branches {
				refs = git.Branches(refs)
			}

			for _, ref := range refs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", ref.Hash, ref.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "working directory, for remote names")
	cmd.Flags().BoolVar(&branches, "heads", false, "only list branches")

	return cmd
}
