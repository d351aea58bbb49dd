package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/cadence/internal/tracking/application/queries"
	"github.com/spf13/cobra"
)

var dashboardFresh bool

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show your weekly dashboard",
	Long: `Display the trailing week of activity:
- Tasks, breaks, and mood check-ins per day
- Current and longest work-day streak
- Hours worked against your weekly goal

Examples:
  cadence dashboard
  cadence dashboard --fresh`,
	Aliases: []string{"dash", "week"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.GetDashboardHandler == nil {
			fmt.Println("Dashboard requires database connection.")
			fmt.Println("Start services with: docker-compose up -d")
			return nil
		}

		query := queries.GetDashboardQuery{
			UserID: app.CurrentUserID,
			Fresh:  dashboardFresh,
		}

		dashboard, err := app.GetDashboardHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to load dashboard: %w", err)
		}

		fmt.Printf("\n  📅 Week of %s\n", time.Now().Format("Monday, January 2, 2006"))
		fmt.Println(strings.Repeat("═", 60))

		fmt.Println("\n  📊 ACTIVITY")
		fmt.Println(strings.Repeat("-", 60))
		fmt.Printf("    %-6s %7s %7s %7s %7s %7s\n", "Day", "Tasks", "Breaks", "Moods", "Mood", "Stress")
		for i, label := range dashboard.Labels {
			fmt.Printf("    %-6s %7d %7d %7d %7s %7s\n",
				label,
				dashboard.TasksPerDay[i],
				dashboard.BreaksPerDay[i],
				dashboard.MoodsPerDay[i],
				formatAvg(dashboard.MoodAvgPerDay[i]),
				formatAvg(dashboard.StressAvgPerDay[i]),
			)
		}

		fmt.Println("\n  🔥 STREAK")
		fmt.Println(strings.Repeat("-", 60))
		fmt.Printf("    Current: %d day(s) | Longest: %d day(s)\n",
			dashboard.CurrentStreak, dashboard.LongestStreak)
		if dashboard.LastActiveDay != "" {
			fmt.Printf("    Last active: %s\n", dashboard.LastActiveDay)
		}

		stats := dashboard.Stats
		fmt.Println("\n  ⏱  THIS WEEK")
		fmt.Println(strings.Repeat("-", 60))
		fmt.Printf("    %.2fh worked | %d%% of goal | %d/%d tasks completed\n",
			stats.HoursWorked, stats.ProgressPct, stats.TasksCompleted, stats.TotalTasks)
		if stats.InProgress != nil {
			fmt.Printf("    ▶ %s (%.0f%% done)\n",
				stats.InProgress.Title, stats.InProgress.Progress.Percent)
		}

		fmt.Println()
		return nil
	},
}

func formatAvg(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardFresh, "fresh", false, "bypass the cache and recompute")
	rootCmd.AddCommand(dashboardCmd)
}
