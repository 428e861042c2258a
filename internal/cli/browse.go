package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/task-planner/internal/store"
	"github.com/rcliao/task-planner/internal/tui"
)

func init() {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Search tasks interactively",
		Long:  "Open a full-screen search over all tasks. Results filter as you type; ctrl+t toggles case sensitivity.",
		Args:  cobra.NoArgs,
		Run:   runBrowse,
	}

	cmd.Flags().StringP("sort", "s", "", "Sort: date|title|duration with -asc or -desc")
	cmd.Flags().BoolP("case-sensitive", "c", false, "Start in case-sensitive mode")

	RootCmd.AddCommand(cmd)
}

func runBrowse(cmd *cobra.Command, args []string) {
	sortBy, _ := cmd.Flags().GetString("sort")
	if sortBy == "" {
		sortBy = cfg.List.Sort
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	tasks, err := s.List(cmd.Context(), store.ListParams{Sort: sortBy})
	if err != nil {
		s.Close()
		exitErr("list", err)
	}
	settings, err := s.Settings(cmd.Context())
	s.Close()
	if err != nil {
		exitErr("settings", err)
	}

	err = tui.Run(tasks, tui.Options{
		CaseSensitive: caseSensitiveFlag(cmd),
		Units:         settings.DurationUnits,
		// stderr is covered by the alt screen; fallback warnings are shown in the status line.
		Logger: nil,
	})
	if err != nil {
		exitErr("browse", err)
	}
}
