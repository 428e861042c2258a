package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/task-planner/internal/search"
	"github.com/rcliao/task-planner/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search tasks",
		Long: `Search task titles, tags, due dates and durations.

Plain text is matched literally. Wrap a regular expression in slashes (/^math/) to use
pattern syntax; an invalid expression falls back to plain text. @tag:name filters by tag.
Matches are wrapped in <mark> in JSON output and highlighted in text output.`,
		Args: cobra.MinimumNArgs(1),
		Run:  runSearch,
	}

	cmd.Flags().BoolP("case-sensitive", "c", false, "Case-sensitive query")
	cmd.Flags().StringP("sort", "s", "", "Sort: date|title|duration with -asc or -desc")
	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	sortBy, _ := cmd.Flags().GetString("sort")
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	if sortBy == "" {
		sortBy = cfg.List.Sort
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	p := store.SearchParams{
		Query:         query,
		CaseSensitive: caseSensitiveFlag(cmd),
		Sort:          sortBy,
		Limit:         limit,
	}
	if textOutput() {
		p.Render = terminalRender
	}

	sess := search.NewSession(logger.With("component", "search"))
	resp, err := s.Search(cmd.Context(), sess, p)
	if err != nil {
		exitErr("search", err)
	}

	if !textOutput() {
		printJSON(cmd.OutOrStdout(), resp)
		return
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, resp.Status.Message)
	for _, r := range resp.Results {
		fmt.Fprintf(out, "%s  %s  [%s]  %s  %s min\n",
			r.ID, r.Highlight.Title, r.Highlight.Tag, r.Highlight.DueDate, r.Highlight.Duration)
	}
}
