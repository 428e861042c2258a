package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all tasks and reset settings",
		Args:  cobra.NoArgs,
		Run:   runClear,
	}

	cmd.Flags().Bool("yes", false, "Confirm deletion of all data")

	RootCmd.AddCommand(cmd)
}

func runClear(cmd *cobra.Command, args []string) {
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		exitErr("clear", errors.New("refusing to delete all data without --yes"))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.Clear(cmd.Context()); err != nil {
		exitErr("clear", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), `{"ok":true}`)
}
