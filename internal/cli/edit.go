package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rcliao/task-planner/internal/store"
	"github.com/rcliao/task-planner/internal/validate"
)

func init() {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long:  "Edit a task by ID or unique ID prefix. Only the given fields change.",
		Args:  cobra.ExactArgs(1),
		Run:   runEdit,
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().StringP("tag", "t", "", "New tag")
	cmd.Flags().String("due", "", "New due date, YYYY-MM-DD")
	cmd.Flags().StringP("duration", "m", "", "New duration in minutes")

	RootCmd.AddCommand(cmd)
}

func runEdit(cmd *cobra.Command, args []string) {
	var patch validate.Patch
	for name, dst := range map[string]**string{
		"title":    &patch.Title,
		"tag":      &patch.Tag,
		"due":      &patch.DueDate,
		"duration": &patch.Duration,
	} {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetString(name)
			*dst = &v
		}
	}

	res := validate.Changes(patch)
	if err := res.Err(); err != nil {
		exitErr("edit", err)
	}
	for _, w := range res.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: "+w)
	}

	p := store.UpdateParams{Title: patch.Title, Tag: patch.Tag, DueDate: patch.DueDate}
	if patch.Duration != nil {
		n, _ := strconv.Atoi(*patch.Duration)
		p.Duration = &n
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	task, err := s.Update(cmd.Context(), args[0], p)
	if err != nil {
		exitErr("edit", err)
	}
	printJSON(cmd.OutOrStdout(), task)
}
