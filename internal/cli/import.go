package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/task-planner/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import tasks and settings",
		Long: `Import an export produced by the export command (JSON or YAML, stdin or --file).
Existing tasks are replaced. Nothing is written if any task fails validation.`,
		Run: runImport,
	}

	cmd.Flags().StringP("file", "i", "", "Read from this file instead of stdin")

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	path, _ := cmd.Flags().GetString("file")

	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		exitErr("read input", err)
	}

	snapshot, err := store.DecodeExport(data)
	if err != nil {
		exitErr("parse import", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	imported, err := s.Import(cmd.Context(), snapshot)
	if err != nil {
		exitErr("import", err)
	}

	if textOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d tasks\n", imported)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"imported":%d}`+"\n", imported)
}
