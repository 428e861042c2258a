package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/task-planner/internal/store"
	"github.com/rcliao/task-planner/internal/validate"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task",
		Long:  "Add a task. The title is taken from the positional args.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runAdd,
	}

	cmd.Flags().StringP("tag", "t", "", "Category tag (required)")
	cmd.Flags().String("due", "", "Due date, YYYY-MM-DD (required)")
	cmd.Flags().StringP("duration", "m", "", "Duration in minutes (required)")

	cmd.MarkFlagRequired("tag")
	cmd.MarkFlagRequired("due")
	cmd.MarkFlagRequired("duration")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	tag, _ := cmd.Flags().GetString("tag")
	due, _ := cmd.Flags().GetString("due")
	duration, _ := cmd.Flags().GetString("duration")
	title := strings.Join(args, " ")

	res := validate.Form(validate.Input{Title: title, DueDate: due, Duration: duration, Tag: tag})
	if err := res.Err(); err != nil {
		exitErr("add", err)
	}
	for _, w := range res.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: "+w)
	}
	minutes, _ := strconv.Atoi(duration)

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	task, err := s.Add(cmd.Context(), store.AddParams{
		Title:    title,
		Tag:      tag,
		DueDate:  due,
		Duration: minutes,
	})
	if err != nil {
		exitErr("add", err)
	}

	if textOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), "added %s %s\n", task.ID, task.Title)
		return
	}
	printJSON(cmd.OutOrStdout(), task)
}
