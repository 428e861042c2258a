package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/task-planner/internal/model"
	"github.com/rcliao/task-planner/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change planner settings",
		Long:  "Without flags, prints the current settings. --daily-cap is in minutes.",
		Args:  cobra.NoArgs,
		Run:   runSettings,
	}

	cmd.Flags().Int("daily-cap", 0, "Daily workload cap in minutes")
	cmd.Flags().String("units", "", "Duration display units: minutes or hours")

	RootCmd.AddCommand(cmd)
}

func runSettings(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	var patch store.SettingsPatch
	if cmd.Flags().Changed("daily-cap") {
		v, _ := cmd.Flags().GetInt("daily-cap")
		patch.DailyCap = &v
	}
	if cmd.Flags().Changed("units") {
		v, _ := cmd.Flags().GetString("units")
		u := model.Unit(v)
		patch.DurationUnits = &u
	}

	var st model.Settings
	if patch.DailyCap == nil && patch.DurationUnits == nil {
		st, err = s.Settings(cmd.Context())
	} else {
		st, err = s.UpdateSettings(cmd.Context(), patch)
	}
	if err != nil {
		exitErr("settings", err)
	}

	if textOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), "daily cap: %s\nunits:     %s\n",
			model.FormatDuration(st.DailyCap, st.DurationUnits), st.DurationUnits)
		return
	}
	printJSON(cmd.OutOrStdout(), st)
}
