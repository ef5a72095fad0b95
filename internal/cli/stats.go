package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	statsJSON  bool
	statsSince string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise board activity from the event log",
	Long: `Display counts derived from the event log: sessions, tasks added and
removed, and edits started, saved and cancelled.

The event log records task IDs only, never titles.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if MetricsCalc == nil {
			return fmt.Errorf("metrics calculator not initialized (event log may be disabled)")
		}

		sinceTime, err := parseSinceDuration(statsSince)
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}

		metrics, err := MetricsCalc.Calculate(sinceTime)
		if err != nil {
			return fmt.Errorf("calculating metrics: %w", err)
		}

		out := cmd.OutOrStdout()
		if statsJSON {
			data, err := json.MarshalIndent(metrics, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting metrics as JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "Board activity (since %s)\n\n", sinceTime.Format("2006-01-02"))
		fmt.Fprintf(out, "  %-20s %d\n", "Events recorded:", metrics.EventCount)
		fmt.Fprintf(out, "  %-20s %d\n", "Sessions:", metrics.Sessions)
		fmt.Fprintf(out, "  %-20s %d\n", "Tasks added:", metrics.TasksAdded)
		fmt.Fprintf(out, "  %-20s %d\n", "Tasks removed:", metrics.TasksRemoved)
		fmt.Fprintf(out, "  %-20s %d\n", "Edits started:", metrics.EditsStarted)
		fmt.Fprintf(out, "  %-20s %d\n", "Edits saved:", metrics.EditsCommitted)
		fmt.Fprintf(out, "  %-20s %d\n", "Edits cancelled:", metrics.EditsCancelled)
		if metrics.EmptyCommits > 0 {
			fmt.Fprintf(out, "  %-20s %d\n", "Saved as empty:", metrics.EmptyCommits)
		}

		if metrics.OldestEvent != nil {
			fmt.Fprintf(out, "\n  %-20s %s\n", "Oldest event:", metrics.OldestEvent.Format(time.RFC3339))
		}
		if metrics.NewestEvent != nil {
			fmt.Fprintf(out, "  %-20s %s\n", "Newest event:", metrics.NewestEvent.Format(time.RFC3339))
		}

		return nil
	},
}

// parseSinceDuration parses a human-friendly duration string like "7d", "30d",
// or "24h" and returns the corresponding time in the past.
func parseSinceDuration(s string) (time.Time, error) {
	now := time.Now().UTC()
	s = strings.TrimSpace(s)
	if s == "" {
		return now.AddDate(0, 0, -7), nil
	}

	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid day duration %q", s)
		}
		return now.AddDate(0, 0, -days), nil
	}

	if strings.HasSuffix(s, "h") {
		hours, err := strconv.Atoi(strings.TrimSuffix(s, "h"))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid hour duration %q", s)
		}
		return now.Add(-time.Duration(hours) * time.Hour), nil
	}

	return time.Time{}, fmt.Errorf("unsupported duration format %q (use e.g. 7d, 30d, 24h)", s)
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output metrics as JSON")
	statsCmd.Flags().StringVar(&statsSince, "since", "7d", "Time window (e.g. 7d, 30d, 24h)")
	rootCmd.AddCommand(statsCmd)
}
