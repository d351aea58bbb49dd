package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/cadence/internal/tracking/application/commands"
	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/spf13/cobra"
)

var (
	logTaskType      string
	logTaskStart     string
	logTaskEnd       string
	logTaskDuration  time.Duration
	logTaskCompleted bool

	logMoodValue   float64
	logStressValue float64
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record activity",
	Long: `Record a task, a break, or a mood check-in.

Examples:
  cadence log task "Write report" --duration 2h --completed
  cadence log task "Standup" --type break
  cadence log break
  cadence log mood --mood 7 --stress 3`,
}

var logTaskCmd = &cobra.Command{
	Use:   "task [title]",
	Short: "Record a work or break interval",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.LogTaskHandler == nil {
			fmt.Println("Logging requires database connection.")
			return nil
		}

		startAt, endAt, err := resolveInterval(logTaskStart, logTaskEnd, logTaskDuration)
		if err != nil {
			return err
		}

		result, err := app.LogTaskHandler.Handle(cmd.Context(), commands.LogTaskCommand{
			UserID:    app.CurrentUserID,
			Title:     strings.Join(args, " "),
			Type:      domain.TaskType(logTaskType),
			StartAt:   startAt,
			EndAt:     endAt,
			Completed: logTaskCompleted,
		})
		if err != nil {
			return fmt.Errorf("failed to log task: %w", err)
		}

		fmt.Println("Task logged!")
		fmt.Printf("  ID: %s\n", result.TaskID.String()[:8])
		if result.CurrentStreak > 0 {
			fmt.Printf("  🔥 Streak: %d day(s) (longest %d)\n",
				result.CurrentStreak, result.LongestStreak)
		}
		return nil
	},
}

var logBreakCmd = &cobra.Command{
	Use:   "break",
	Short: "Record a break",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.LogBreakHandler == nil {
			fmt.Println("Logging requires database connection.")
			return nil
		}

		result, err := app.LogBreakHandler.Handle(cmd.Context(), commands.LogBreakCommand{
			UserID:     app.CurrentUserID,
			OccurredAt: time.Now(),
		})
		if err != nil {
			return fmt.Errorf("failed to log break: %w", err)
		}

		fmt.Printf("Break logged! (%s)\n", result.BreakID.String()[:8])
		return nil
	},
}

var logMoodCmd = &cobra.Command{
	Use:   "mood",
	Short: "Record a mood check-in",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.LogMoodHandler == nil {
			fmt.Println("Logging requires database connection.")
			return nil
		}

		moodCmd := commands.LogMoodCommand{
			UserID:     app.CurrentUserID,
			OccurredAt: time.Now(),
		}
		if cmd.Flags().Changed("mood") {
			moodCmd.Mood = &logMoodValue
		}
		if cmd.Flags().Changed("stress") {
			moodCmd.Stress = &logStressValue
		}

		result, err := app.LogMoodHandler.Handle(cmd.Context(), moodCmd)
		if err != nil {
			return fmt.Errorf("failed to log mood: %w", err)
		}

		fmt.Printf("Mood check-in logged! (%s)\n", result.CheckinID.String()[:8])
		return nil
	},
}

// resolveInterval turns the start/end/duration flags into timestamps.
// Duration counts back from the end, which defaults to now.
func resolveInterval(startFlag, endFlag string, duration time.Duration) (*time.Time, *time.Time, error) {
	var startAt, endAt *time.Time

	if endFlag != "" {
		end, err := parseLocalTime(endFlag)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --end: %w", err)
		}
		endAt = &end
	}
	if startFlag != "" {
		start, err := parseLocalTime(startFlag)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --start: %w", err)
		}
		startAt = &start
	}

	if duration > 0 && startAt == nil {
		end := time.Now()
		if endAt != nil {
			end = *endAt
		} else {
			endAt = &end
		}
		start := end.Add(-duration)
		startAt = &start
	}

	if startAt != nil && endAt == nil {
		end := time.Now()
		endAt = &end
	}

	return startAt, endAt, nil
}

func parseLocalTime(value string) (time.Time, error) {
	layouts := []string{time.RFC3339, "2006-01-02 15:04", "15:04"}
	for _, layout := range layouts {
		parsed, err := time.ParseInLocation(layout, value, time.Local)
		if err != nil {
			continue
		}
		if layout == "15:04" {
			now := time.Now()
			parsed = time.Date(now.Year(), now.Month(), now.Day(),
				parsed.Hour(), parsed.Minute(), 0, 0, time.Local)
		}
		return parsed, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", value)
}

func init() {
	logTaskCmd.Flags().StringVar(&logTaskType, "type", string(domain.TaskTypeWork), "task type (work or break)")
	logTaskCmd.Flags().StringVar(&logTaskStart, "start", "", "start time (15:04, 2006-01-02 15:04, or RFC3339)")
	logTaskCmd.Flags().StringVar(&logTaskEnd, "end", "", "end time (defaults to now)")
	logTaskCmd.Flags().DurationVar(&logTaskDuration, "duration", 0, "interval length, counted back from the end")
	logTaskCmd.Flags().BoolVar(&logTaskCompleted, "completed", false, "mark the task completed")

	logMoodCmd.Flags().Float64Var(&logMoodValue, "mood", 0, "mood score in [1, 10]")
	logMoodCmd.Flags().Float64Var(&logStressValue, "stress", 0, "stress score in [1, 10]")

	logCmd.AddCommand(logTaskCmd)
	logCmd.AddCommand(logBreakCmd)
	logCmd.AddCommand(logMoodCmd)
	rootCmd.AddCommand(logCmd)
}
