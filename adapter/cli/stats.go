package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/cadence/internal/tracking/application/queries"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show weekly work statistics",
	Long: `Display hours worked this week, progress toward your weekly
goal, completed tasks, and streak numbers.

Examples:
  cadence stats`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.GetUserStatsHandler == nil {
			fmt.Println("Stats require database connection.")
			fmt.Println("Start services with: docker-compose up -d")
			return nil
		}

		result, err := app.GetUserStatsHandler.Handle(cmd.Context(), queries.GetUserStatsQuery{
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}

		fmt.Println("\n  ⏱  WEEKLY STATS")
		fmt.Println(strings.Repeat("-", 60))
		fmt.Printf("    Hours worked:    %.2fh of %.0fh goal (%d%%)\n",
			result.Stats.HoursWorked, result.WeeklyGoalHours, result.Stats.ProgressPct)
		fmt.Printf("    Tasks completed: %d of %d\n",
			result.Stats.TasksCompleted, result.Stats.TotalTasks)
		fmt.Printf("    Streak:          %d day(s), longest %d\n",
			result.CurrentStreak, result.LongestStreak)
		if result.Stats.InProgress != nil {
			progress := result.Stats.InProgress.Progress
			fmt.Printf("    In progress:     %s (%.0f%%, %s remaining)\n",
				result.Stats.InProgress.Title, progress.Percent, progress.Remaining.Round(time.Second))
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
