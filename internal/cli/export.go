package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/task-planner/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks and settings",
		Long:  "Export every task and the settings as JSON (default) or YAML. Output goes to stdout unless --output is set.",
		Run:   runExport,
	}

	cmd.Flags().String("as", store.FormatJSON, "Export format: json or yaml")
	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	format, _ := cmd.Flags().GetString("as")
	outPath, _ := cmd.Flags().GetString("output")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	snapshot, err := s.ExportAll(cmd.Context())
	if err != nil {
		exitErr("export", err)
	}

	w := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			exitErr("create output", err)
		}
		defer f.Close()
		w = f
	}

	if err := store.EncodeExport(w, snapshot, format); err != nil {
		exitErr("encode export", err)
	}
	logger.Info("export written", "tasks", len(snapshot.Tasks), "format", format, "output", outPath)
}
