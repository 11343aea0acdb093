package main

import (
	"context"
	"fmt"
	"time"

	"github.com/janekbaraniewski/ratelimits/internal/appupdate"
	"github.com/janekbaraniewski/ratelimits/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ratelimits "+version.String())
			if !check {
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			res, err := appupdate.Checker{Timeout: 5 * time.Second}.Check(ctx, version.Version)
			if err != nil {
				return fmt.Errorf("checking for updates: %w", err)
			}
			switch {
			case res.CurrentVersion == "":
				fmt.Fprintln(out, "development build, skipping update check")
			case res.UpdateAvailable:
				fmt.Fprintf(out, "update available: %s -> %s\n  %s\n", res.CurrentVersion, res.LatestVersion, res.UpgradeHint)
			default:
				fmt.Fprintln(out, "up to date")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "check GitHub for a newer release")
	return cmd
}
