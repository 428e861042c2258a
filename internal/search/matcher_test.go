package search

import (
	"testing"

	"github.com/rcliao/task-planner/internal/model"
)

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: "1", Title: "Math Homework", Tag: "School", DueDate: "2025-10-01", Duration: 60},
		{ID: "2", Title: "Gym", Tag: "Fitness", DueDate: "2025-10-02", Duration: 45},
		{ID: "3", Title: "Read school notes", Tag: "Reading", DueDate: "2025-10-03", Duration: 30},
	}
}

func ids(tasks []model.Task) []string {
	var out []string
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSearchableText(t *testing.T) {
	got := SearchableText(sampleTasks()[0])
	want := "Math Homework School 2025-10-01 60"
	if got != want {
		t.Errorf("SearchableText = %q, want %q", got, want)
	}
}

func TestFilter_Identity(t *testing.T) {
	tasks := sampleTasks()
	for _, in := range []string{"", "   ", "\t"} {
		s := NewSession(nil)
		s.UpdateFromInput(in, false)
		got := Filter(tasks, s)
		if len(got) != len(tasks) || &got[0] != &tasks[0] {
			t.Errorf("input %q: expected the input slice back", in)
		}
	}
	if got := Filter(tasks, nil); len(got) != len(tasks) {
		t.Error("nil session should not filter")
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		cs    bool
		want  []string
	}{
		{"plain text", "math", false, []string{"1"}},
		{"case sensitive miss", "math", true, nil},
		{"spans fields via separator", "Homework School", false, []string{"1"}},
		{"due date", "2025-10-02", false, []string{"2"}},
		{"duration", "45", false, []string{"2"}},
		{"regex literal", "/^(gym|math)/", false, []string{"1", "2"}},
		{"tag query", "@tag:school", false, []string{"1"}},
		{"tag query ignores title", "@tag:reading", false, []string{"3"}},
		{"tag query exact", "@tag:schoo", false, nil},
		{"fallback literal", "/a(/", false, nil},
		{"order preserved", "e", false, []string{"1", "2", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(nil)
			s.UpdateFromInput(tt.input, tt.cs)
			got := ids(Filter(sampleTasks(), s))
			if !equalIDs(got, tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFilter_TagQueryMatchesExactlyEqualTags(t *testing.T) {
	tasks := []model.Task{
		{ID: "a", Title: "fitness plan", Tag: "School", DueDate: "2025-01-01", Duration: 1},
		{ID: "b", Title: "School trip", Tag: "Travel", DueDate: "2025-01-01", Duration: 1},
		{ID: "c", Title: "x", Tag: "school", DueDate: "2025-01-01", Duration: 1},
		{ID: "d", Title: "x", Tag: "High School", DueDate: "2025-01-01", Duration: 1},
	}
	got := ids(FilterPattern(tasks, TagPattern("SCHOOL")))
	if !equalIDs(got, []string{"a", "c"}) {
		t.Errorf("got %v", got)
	}
}

func TestFilter_DoesNotMutate(t *testing.T) {
	tasks := sampleTasks()
	before := tasks[0]
	p, _ := Compile("math", false)
	FilterPattern(tasks, p)
	if tasks[0] != before {
		t.Error("task mutated")
	}
}
