package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "ratelimits",
		Short: "ratelimits is a terminal dashboard for API rate-limit quotas and usage history.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()
			return runDashboard(s)
		},
	}
	opts.register(root)

	root.AddCommand(newStatusCommand(opts))
	root.AddCommand(newVersionCommand())
	return root
}
