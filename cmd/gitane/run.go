package main

import (
	"github.com/spf13/cobra"

	"github.com/randalmurphal/gitane"
)

func newRunCmd(flags *globalFlags) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "run [flags] -- command [args...]",
		Short: "Run a command with GIT_SSH set to a one-time identity",
		Example: `  gitane run --key deploy_key -- git fetch origin
  gitane run --key deploy_key --dir ./repo -- git push origin main`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags)
			if err != nil {
				return err
			}

			_, err = s.runner.Run(cmd.Context(), gitane.Request{
				Dir:    dir,
				Key:    s.key,
				Args:   args,
				Events: gitane.MultiSink{outputSink(cmd), gitane.NewLogSink(s.logger)},
			})
			return err
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "working directory of the command")

	return cmd
}
