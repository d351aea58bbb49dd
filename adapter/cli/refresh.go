package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refreshAll bool

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Recompute cached dashboards",
	Long: `Rebuild the dashboard for the current user (or for every known
user with --all) and push the result into the cache. This is the same
work the background worker does on its interval.

Examples:
  cadence refresh
  cadence refresh --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.Refresher == nil {
			fmt.Println("Refresh requires database connection.")
			return nil
		}

		if refreshAll {
			app.Refresher.RefreshAll(cmd.Context())
			fmt.Println("All dashboards refreshed.")
			return nil
		}

		if err := app.Refresher.RefreshUser(cmd.Context(), app.CurrentUserID); err != nil {
			return fmt.Errorf("failed to refresh dashboard: %w", err)
		}
		fmt.Println("Dashboard refreshed.")
		return nil
	},
}

func init() {
	refreshCmd.Flags().BoolVar(&refreshAll, "all", false, "refresh every known user")
	rootCmd.AddCommand(refreshCmd)
}
