package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rcliao/task-planner/internal/model"
	"github.com/rcliao/task-planner/internal/store"
)

// resetFlags restores every flag to its default so commands do not leak state between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func setup(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TASK_PLANNER_DB", "")
	t.Chdir(home)
	return filepath.Join(home, "test.db")
}

func run(t *testing.T, db string, args ...string) string {
	t.Helper()
	resetFlags(RootCmd)
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(io.Discard)
	RootCmd.SetIn(strings.NewReader(""))
	RootCmd.SetArgs(append([]string{"--db", db}, args...))
	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format(model.DateLayout)
}

func addTask(t *testing.T, db, title, tag, minutes string) model.Task {
	t.Helper()
	out := run(t, db, "add", title, "--tag", tag, "--due", tomorrow(), "--duration", minutes)
	var task model.Task
	if err := json.Unmarshal([]byte(out), &task); err != nil {
		t.Fatalf("parse add output %q: %v", out, err)
	}
	return task
}

func TestAddGetList(t *testing.T) {
	db := setup(t)
	a := addTask(t, db, "Math homework", "school", "60")
	addTask(t, db, "Gym session", "fitness", "45")

	var got model.Task
	if err := json.Unmarshal([]byte(run(t, db, "get", a.ID[:10])), &got); err != nil {
		t.Fatal(err)
	}
	if got.ID != a.ID || got.Title != "Math homework" {
		t.Errorf("get = %+v", got)
	}

	var tasks []model.Task
	if err := json.Unmarshal([]byte(run(t, db, "list", "--sort", "title-asc")), &tasks); err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 2 || tasks[0].Title != "Gym session" {
		t.Errorf("list = %+v", tasks)
	}
}

func TestListQueryHighlight(t *testing.T) {
	db := setup(t)
	addTask(t, db, "Math homework", "school", "60")
	addTask(t, db, "Gym session", "fitness", "45")

	var results []store.SearchResult
	out := run(t, db, "list", "--query", "/^math/", "--highlight")
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Highlight.Title != "<mark>Math</mark> homework" {
		t.Errorf("highlight = %q", results[0].Highlight.Title)
	}
}

func TestSearchCommand(t *testing.T) {
	db := setup(t)
	addTask(t, db, "Math homework", "school", "60")
	addTask(t, db, "Gym session", "fitness", "45")

	var resp store.SearchResponse
	if err := json.Unmarshal([]byte(run(t, db, "search", "@tag:fitness")), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Title != "Gym session" {
		t.Errorf("results = %+v", resp.Results)
	}
	if resp.Status.Message != "Filtering by tag: fitness" {
		t.Errorf("status = %q", resp.Status.Message)
	}

	out := run(t, db, "--format", "text", "search", "/[a/")
	if !strings.HasPrefix(out, "Invalid regex pattern. Using plain text search.") {
		t.Errorf("text output = %q", out)
	}
}

func TestEditAndRm(t *testing.T) {
	db := setup(t)
	a := addTask(t, db, "Read book", "leisure", "30")

	var edited model.Task
	if err := json.Unmarshal([]byte(run(t, db, "edit", a.ID, "--duration", "90")), &edited); err != nil {
		t.Fatal(err)
	}
	if edited.Duration != 90 || edited.Title != "Read book" {
		t.Errorf("edited = %+v", edited)
	}

	run(t, db, "rm", a.ID)
	var tasks []model.Task
	if err := json.Unmarshal([]byte(run(t, db, "list")), &tasks); err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 0 {
		t.Errorf("tasks after rm = %d", len(tasks))
	}
}

func TestSettingsAndStats(t *testing.T) {
	db := setup(t)
	addTask(t, db, "Math homework", "school", "60")

	var st model.Settings
	if err := json.Unmarshal([]byte(run(t, db, "settings", "--daily-cap", "120", "--units", "hours")), &st); err != nil {
		t.Fatal(err)
	}
	if st.DailyCap != 120 || st.DurationUnits != model.Hours {
		t.Errorf("settings = %+v", st)
	}

	var stats store.Stats
	if err := json.Unmarshal([]byte(run(t, db, "stats")), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalTasks != 1 || stats.TopTag != "school" || stats.DailyCap != 120 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestExportImportYAML(t *testing.T) {
	db := setup(t)
	addTask(t, db, "Math homework", "school", "60")
	addTask(t, db, "Gym session", "fitness", "45")

	path := filepath.Join(t.TempDir(), "backup.yaml")
	run(t, db, "export", "--as", "yaml", "--output", path)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "title: Math homework") {
		t.Errorf("export missing task:\n%s", data)
	}

	other := filepath.Join(t.TempDir(), "other.db")
	out := run(t, other, "import", "--file", path)
	if strings.TrimSpace(out) != `{"ok":true,"imported":2}` {
		t.Errorf("import output = %q", out)
	}

	var tasks []model.Task
	if err := json.Unmarshal([]byte(run(t, other, "list")), &tasks); err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 2 {
		t.Errorf("imported tasks = %d, want 2", len(tasks))
	}
}

func TestClear(t *testing.T) {
	db := setup(t)
	addTask(t, db, "Math homework", "school", "60")

	run(t, db, "clear", "--yes")
	var tasks []model.Task
	if err := json.Unmarshal([]byte(run(t, db, "list")), &tasks); err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 0 {
		t.Errorf("tasks after clear = %d", len(tasks))
	}
}
