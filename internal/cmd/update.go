package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/menuboard/menuboard/internal/update"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "check-update",
	Short: "Check for updates",
	Long:  `Check if a new version of menuboard is available.`,
	Example: heredoc.Doc(`
		# Check for updates
		menuboard check-update
	`),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		info, err := update.CheckForUpdate(ctx)
		if update.IsOffline(err) {
			fmt.Fprintln(cmd.OutOrStdout(), "Could not reach the release server, are you offline?")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to check for updates: %w", err)
		}

		out := cmd.OutOrStdout()
		if !info.Available {
			fmt.Fprintf(out, "You are running the latest version: %s\n", info.CurrentVersion)
			return nil
		}

		fmt.Fprintf(out, "\nA new version of menuboard is available!\n\n")
		fmt.Fprintf(out, "Current version: %s\n", info.CurrentVersion)
		fmt.Fprintf(out, "Latest version:  %s\n\n", info.LatestVersion)
		fmt.Fprintf(out, "Visit %s to download the latest version.\n", info.ReleaseURL)

		return nil
	},
}
