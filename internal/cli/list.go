package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/task-planner/internal/search"
	"github.com/rcliao/task-planner/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Run:   runList,
	}

	cmd.Flags().StringP("sort", "s", "", "Sort: date|title|duration with -asc or -desc (default from config)")
	cmd.Flags().StringP("tag", "t", "", "Only tasks with this tag")
	cmd.Flags().IntP("limit", "l", 0, "Max results (0 = all)")
	cmd.Flags().StringP("query", "q", "", "Filter with a search query (text, /regex/ or @tag:name)")
	cmd.Flags().BoolP("case-sensitive", "c", false, "Case-sensitive query")
	cmd.Flags().Bool("highlight", false, "Include <mark>-highlighted fields in JSON output")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	sortBy, _ := cmd.Flags().GetString("sort")
	tag, _ := cmd.Flags().GetString("tag")
	limit, _ := cmd.Flags().GetInt("limit")
	query, _ := cmd.Flags().GetString("query")
	highlight, _ := cmd.Flags().GetBool("highlight")
	caseSensitive := caseSensitiveFlag(cmd)

	if sortBy == "" {
		sortBy = cfg.List.Sort
	}
	if limit == 0 {
		limit = cfg.List.Limit
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	tasks, err := s.List(cmd.Context(), store.ListParams{Sort: sortBy, Tag: tag})
	if err != nil {
		exitErr("list", err)
	}

	sess := search.NewSession(logger.With("component", "search"))
	sess.UpdateFromInput(query, caseSensitive)
	tasks = search.Filter(tasks, sess)
	if limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}

	if textOutput() {
		settings, err := s.Settings(cmd.Context())
		if err != nil {
			exitErr("settings", err)
		}
		writeTaskTable(cmd.OutOrStdout(), tasks, sess.Pattern(), settings.DurationUnits)
		return
	}
	if !highlight {
		printJSON(cmd.OutOrStdout(), tasks)
		return
	}
	results := make([]store.SearchResult, 0, len(tasks))
	for _, t := range tasks {
		results = append(results, store.SearchResult{Task: t, Highlight: search.HighlightTaskHTML(t, sess.Pattern())})
	}
	printJSON(cmd.OutOrStdout(), results)
}

// caseSensitiveFlag reads --case-sensitive, falling back to the configured default.
func caseSensitiveFlag(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("case-sensitive") {
		v, _ := cmd.Flags().GetBool("case-sensitive")
		return v
	}
	return cfg.Search.CaseSensitive
}
