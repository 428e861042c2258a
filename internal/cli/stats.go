package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rcliao/task-planner/internal/model"
	"github.com/rcliao/task-planner/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics and today's load against the daily cap",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context())
	if err != nil {
		exitErr("stats", err)
	}

	if textOutput() {
		writeStats(cmd, stats)
		return
	}
	printJSON(cmd.OutOrStdout(), stats)
}

func writeStats(cmd *cobra.Command, st *store.Stats) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Tasks:          %s\n", humanize.Comma(int64(st.TotalTasks)))
	fmt.Fprintf(out, "Total duration: %s\n", model.FormatDuration(st.TotalDuration, st.Units))
	fmt.Fprintf(out, "Top tag:        %s\n", st.TopTag)
	fmt.Fprintf(out, "This week:      %s\n", humanize.Comma(int64(st.WeekTasks)))

	over := ""
	if st.IsOverCap {
		over = "  OVER CAP"
	}
	fmt.Fprintf(out, "Today:          %s of %s (%.0f%%)%s\n",
		model.FormatDuration(st.TodayDuration, st.Units),
		model.FormatDuration(st.DailyCap, st.Units), st.CapPercentage, over)

	fmt.Fprintln(out, "Last 7 days:")
	for _, d := range st.DailyUsage {
		fmt.Fprintf(out, "  %s  %d\n", d.Date, d.Count)
	}
}
